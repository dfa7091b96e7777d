package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
	"kanban/internal/store"
	"kanban/internal/testutil"
)

func TestDetectVersion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{name: "versioned envelope", data: `{"version": 2, "metadata": {}, "data": {}}`, want: 2},
		{name: "future envelope", data: `{"version": 7}`, want: 7},
		{name: "bare v1 snapshot", data: `{"boards": [], "columns": [], "cards": []}`, want: 1},
		{name: "unrecognized document", data: `{"stuff": true}`, wantErr: true},
		{name: "not json", data: `not json at all`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.DetectVersion([]byte(tt.data))
			if tt.wantErr {
				if !core.IsKind(err, core.KindSerialization) {
					t.Fatalf("got %v, want serialization error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectVersion() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("version = %d, want %d", got, tt.want)
			}
		})
	}
}

// writeV1File lays down a legacy bare-snapshot document with one board
// and one column.
func writeV1File(t *testing.T, dir string) string {
	t.Helper()
	now := testutil.FixedClock().Now()
	snap := domain.NewSnapshot()
	board := domain.NewBoard(uuid.New(), "legacy", nil, now)
	board.AllocateCardNumber(now)
	snap.Boards = append(snap.Boards, board)
	snap.Columns = append(snap.Columns, domain.NewColumn(uuid.New(), board.ID, "todo", 0, now))

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "kanban.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMigrateV1ToV2(t *testing.T) {
	t.Run("rewrites the file and keeps a backup", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeV1File(t, dir)
		original, _ := os.ReadFile(path)

		err := store.MigrateV1ToV2(path, uuid.New(), testutil.FixedClock().Now())
		if err != nil {
			t.Fatalf("migrate: %v", err)
		}

		migrated, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		version, err := store.DetectVersion(migrated)
		if err != nil {
			t.Fatal(err)
		}
		if version != 2 {
			t.Errorf("migrated version = %d, want 2", version)
		}

		backup, err := os.ReadFile(path + store.BackupSuffix)
		if err != nil {
			t.Fatalf("backup missing: %v", err)
		}
		if string(backup) != string(original) {
			t.Error("backup should be the untouched v1 bytes")
		}
	})

	t.Run("migrated data loads through the store", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeV1File(t, dir)
		if err := store.MigrateV1ToV2(path, uuid.New(), testutil.FixedClock().Now()); err != nil {
			t.Fatal(err)
		}

		snap, err := store.NewFileStore(path, testutil.FixedClock()).Load()
		if err != nil {
			t.Fatalf("Load() after migration: %v", err)
		}
		if len(snap.Boards) != 1 || snap.Boards[0].Name != "legacy" {
			t.Fatalf("boards = %d, want the migrated board", len(snap.Boards))
		}
		if snap.Boards[0].NextCardNumber != 2 {
			t.Errorf("next card number = %d, want 2", snap.Boards[0].NextCardNumber)
		}
		if len(snap.Columns) != 1 {
			t.Errorf("columns = %d, want 1", len(snap.Columns))
		}
	})

	t.Run("already migrated file is left alone", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeV1File(t, dir)
		if err := store.MigrateV1ToV2(path, uuid.New(), testutil.FixedClock().Now()); err != nil {
			t.Fatal(err)
		}
		first, _ := os.ReadFile(path)

		if err := store.MigrateV1ToV2(path, uuid.New(), testutil.FixedClock().Now()); err != nil {
			t.Fatalf("second migrate: %v", err)
		}

		second, _ := os.ReadFile(path)
		if string(first) != string(second) {
			t.Error("repeat migration should not rewrite the file")
		}
	})

	t.Run("missing file is a no-op", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "kanban.json")
		if err := store.MigrateV1ToV2(path, uuid.New(), testutil.FixedClock().Now()); err != nil {
			t.Fatalf("migrate on missing file: %v", err)
		}
	})

	t.Run("load migrates transparently", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeV1File(t, dir)

		snap, err := store.NewFileStore(path, testutil.FixedClock()).Load()
		if err != nil {
			t.Fatalf("Load() on v1 file: %v", err)
		}
		if len(snap.Boards) != 1 {
			t.Fatal("v1 data should survive the in-load migration")
		}
		if _, err := os.Stat(path + store.BackupSuffix); err != nil {
			t.Errorf("backup should exist after in-load migration: %v", err)
		}
	})
}
