package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// BackupSuffix is appended to the data file name when a v1 document is
// backed up before migration.
const BackupSuffix = ".v1.backup"

// DetectVersion classifies raw file content. A document with a top-level
// "version" field is a versioned envelope; a bare snapshot with a
// "boards" field is the legacy v1 layout.
func DetectVersion(data []byte) (int, error) {
	var probe struct {
		Version *int            `json:"version"`
		Boards  json.RawMessage `json:"boards"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, core.SerializationErr("probing data file version", err)
	}
	if probe.Version != nil {
		return *probe.Version, nil
	}
	if probe.Boards != nil {
		return 1, nil
	}
	return 0, core.SerializationErr("probing data file version",
		fmt.Errorf("document is neither a versioned envelope nor a v1 snapshot"))
}

// MigrateV1ToV2 rewrites a legacy bare-snapshot file as a v2 envelope.
// The original is kept next to the data file with BackupSuffix, and the
// rewritten document is parsed back before the rename to prove the
// migration round-trips. Calling it on a file that is already v2 is a
// no-op.
func MigrateV1ToV2(path string, instanceID uuid.UUID, now time.Time) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return core.IOErr(fmt.Sprintf("reading %s", path), err)
	}
	version, err := DetectVersion(raw)
	if err != nil {
		return err
	}
	if version >= FormatVersion {
		return nil
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return core.SerializationErr("parsing v1 snapshot", err)
	}

	backup := path + BackupSuffix
	if err := os.WriteFile(backup, raw, 0o644); err != nil {
		return core.IOErr(fmt.Sprintf("writing backup %s", backup), err)
	}

	env := envelope{
		Version: FormatVersion,
		Metadata: Metadata{
			FormatVersion: FormatVersion,
			InstanceID:    instanceID,
			SavedAt:       now,
		},
	}
	env.Data, err = json.Marshal(&snapshot)
	if err != nil {
		return core.SerializationErr("encoding migrated snapshot", err)
	}
	out, err := json.MarshalIndent(&env, "", "  ")
	if err != nil {
		return core.SerializationErr("encoding migrated envelope", err)
	}

	// Prove the migrated document round-trips before replacing the file.
	var check envelope
	if err := json.Unmarshal(out, &check); err != nil {
		return core.SerializationErr("verifying migrated envelope", err)
	}
	var checkSnap domain.Snapshot
	if err := json.Unmarshal(check.Data, &checkSnap); err != nil {
		return core.SerializationErr("verifying migrated snapshot", err)
	}
	if len(checkSnap.Boards) != len(snapshot.Boards) ||
		len(checkSnap.Cards) != len(snapshot.Cards) ||
		len(checkSnap.Columns) != len(snapshot.Columns) ||
		len(checkSnap.Sprints) != len(snapshot.Sprints) {
		return core.SerializationErr("verifying migrated snapshot",
			fmt.Errorf("entity counts changed during migration"))
	}

	return writeAtomic(path, append(bytes.TrimRight(out, "\n"), '\n'))
}
