package kanban_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"kanban/internal/config"
	"kanban/internal/core"
	"kanban/internal/domain"
	"kanban/internal/history"
	"kanban/internal/kanban"
	"kanban/internal/store"
	"kanban/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newService builds a loaded service over dir with stub clock and ids
// and no watcher.
func newService(t *testing.T, dir string) *kanban.Service {
	t.Helper()
	cfg := config.NewConfig(dir)
	st := store.NewFileStore(cfg.DataFile, testutil.FixedClock())
	svc := kanban.NewService(st, history.NewManager(cfg.History.Limit), store.LastWriteWins{}, nil,
		discardLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator(), cfg)
	if err := svc.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return svc
}

// writeExternal rewrites the data file as another instance would,
// stamping saved_at from the given clock.
func writeExternal(t *testing.T, dir string, clock *testutil.StubClock, boardName string) {
	t.Helper()
	snap := domain.NewSnapshot()
	snap.Boards = append(snap.Boards, domain.NewBoard(uuid.New(), boardName, nil, clock.Now()))
	ext := store.NewFileStore(filepath.Join(dir, "kanban.json"), clock)
	if _, err := ext.Load(); err != nil {
		t.Fatal(err)
	}
	if err := ext.Save(snap, store.SaveOptions{Force: true}); err != nil {
		t.Fatal(err)
	}
}

func TestService_CreateAndQuery(t *testing.T) {
	t.Parallel()
	svc := newService(t, t.TempDir())

	boardID, err := svc.CreateBoard("work", nil, nil)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	colID, err := svc.CreateColumn(boardID, "todo", nil)
	if err != nil {
		t.Fatalf("create column: %v", err)
	}
	first, err := svc.CreateCard(boardID, colID, "one")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if _, err := svc.CreateCard(boardID, colID, "two"); err != nil {
		t.Fatal(err)
	}

	boards := svc.ListBoards()
	if len(boards) != 1 || boards[0].Name != "work" {
		t.Fatalf("boards = %v, want [work]", boards)
	}
	cards, err := svc.ListCards(domain.CardFilter{BoardID: &boardID})
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 || cards[0].ID != first {
		t.Fatalf("cards = %d, want two with %s first", len(cards), first)
	}
	if cards[0].CardNumber != 1 || cards[1].CardNumber != 2 {
		t.Errorf("card numbers = (%d, %d), want (1, 2)", cards[0].CardNumber, cards[1].CardNumber)
	}
}

func TestService_DeleteLastBoardPersists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc := newService(t, dir)
	boardID, err := svc.CreateBoard("only", nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Emptying the workspace through an explicit delete must reach disk.
	if err := svc.DeleteBoard(boardID); err != nil {
		t.Fatalf("deleting the last board: %v", err)
	}

	snap, err := store.NewFileStore(filepath.Join(dir, "kanban.json"), testutil.FixedClock()).Load()
	if err != nil {
		t.Fatalf("reloading data file: %v", err)
	}
	if len(snap.Boards) != 0 {
		t.Fatalf("boards on disk = %d, want 0", len(snap.Boards))
	}
}

func TestService_UndoRedo(t *testing.T) {
	t.Run("undo reverses the last command, redo replays it", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, t.TempDir())
		boardID, _ := svc.CreateBoard("work", nil, nil)
		colID, _ := svc.CreateColumn(boardID, "todo", nil)
		if _, err := svc.CreateCard(boardID, colID, "task"); err != nil {
			t.Fatal(err)
		}

		if err := svc.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}
		cards, _ := svc.ListCards(domain.CardFilter{BoardID: &boardID})
		if len(cards) != 0 {
			t.Fatalf("after undo cards = %d, want 0", len(cards))
		}
		if !svc.CanRedo() {
			t.Fatal("undo should leave a redo entry")
		}

		if err := svc.Redo(); err != nil {
			t.Fatalf("redo: %v", err)
		}
		cards, _ = svc.ListCards(domain.CardFilter{BoardID: &boardID})
		if len(cards) != 1 || cards[0].Title != "task" {
			t.Fatalf("after redo cards = %v, want the task back", cards)
		}
	})

	t.Run("a new command clears the redo stack", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, t.TempDir())
		boardID, _ := svc.CreateBoard("work", nil, nil)
		if _, err := svc.CreateColumn(boardID, "todo", nil); err != nil {
			t.Fatal(err)
		}
		if err := svc.Undo(); err != nil {
			t.Fatal(err)
		}

		if _, err := svc.CreateColumn(boardID, "doing", nil); err != nil {
			t.Fatal(err)
		}

		if svc.CanRedo() {
			t.Error("new command should clear redo")
		}
	})

	t.Run("failed command captures nothing", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, t.TempDir())
		boardID, _ := svc.CreateBoard("work", nil, nil)

		if _, err := svc.CreateColumn(boardID, "", nil); err == nil {
			t.Fatal("empty column name should be rejected")
		}

		if err := svc.Undo(); err != nil {
			t.Fatal(err)
		}
		if svc.CanUndo() {
			t.Error("only the board creation should have been captured")
		}
	})

	t.Run("empty stacks yield validation errors", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, t.TempDir())

		if err := svc.Undo(); !core.IsKind(err, core.KindValidation) {
			t.Errorf("undo on empty = %v, want validation error", err)
		}
		if err := svc.Redo(); !core.IsKind(err, core.KindValidation) {
			t.Errorf("redo on empty = %v, want validation error", err)
		}
	})
}

func TestService_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	svc := newService(t, dir)
	boardID, err := svc.CreateBoard("work", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Close(); err != nil {
		t.Fatal(err)
	}

	again := newService(t, dir)
	board, err := again.GetBoard(boardID)
	if err != nil {
		t.Fatalf("board did not survive restart: %v", err)
	}
	if board.Name != "work" {
		t.Errorf("name = %q, want work", board.Name)
	}
	if again.CanUndo() {
		t.Error("history should not survive a restart")
	}
}

func TestService_ConflictResolution(t *testing.T) {
	t.Run("newer external change wins and clears history", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		svc := newService(t, dir)
		if _, err := svc.CreateBoard("mine", nil, nil); err != nil {
			t.Fatal(err)
		}

		newer := testutil.FixedClock()
		newer.Advance(time.Hour)
		writeExternal(t, dir, newer, "theirs")

		// The save inside this command conflicts; the resolver adopts
		// the newer external snapshot and the command's effect is lost.
		if _, err := svc.CreateBoard("doomed", nil, nil); err != nil {
			t.Fatalf("conflicted command: %v", err)
		}

		boards := svc.ListBoards()
		if len(boards) != 1 || boards[0].Name != "theirs" {
			t.Fatalf("boards = %v, want only the external board", boards)
		}
		if svc.CanUndo() {
			t.Error("adopting external state should clear history")
		}
	})

	t.Run("older external change loses to local state", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		svc := newService(t, dir)
		if _, err := svc.CreateBoard("mine", nil, nil); err != nil {
			t.Fatal(err)
		}

		older := testutil.FixedClock()
		older.Advance(-time.Hour)
		writeExternal(t, dir, older, "stale")

		if _, err := svc.CreateBoard("second", nil, nil); err != nil {
			t.Fatalf("conflicted command: %v", err)
		}

		// Local won: both of our boards survive and are on disk.
		reloaded := newService(t, dir)
		boards := reloaded.ListBoards()
		if len(boards) != 2 {
			t.Fatalf("boards on disk = %d, want our 2", len(boards))
		}
		for _, b := range boards {
			if b.Name == "stale" {
				t.Error("stale external board should have been overwritten")
			}
		}
	})
}

func TestService_HandleExternalChange(t *testing.T) {
	t.Run("clean service adopts the new snapshot", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		svc := newService(t, dir)
		if _, err := svc.CreateBoard("mine", nil, nil); err != nil {
			t.Fatal(err)
		}

		newer := testutil.FixedClock()
		newer.Advance(time.Minute)
		writeExternal(t, dir, newer, "theirs")

		if err := svc.HandleExternalChange(); err != nil {
			t.Fatalf("handle external change: %v", err)
		}

		boards := svc.ListBoards()
		if len(boards) != 1 || boards[0].Name != "theirs" {
			t.Fatalf("boards = %v, want the external board", boards)
		}
		if svc.CanUndo() {
			t.Error("history should be cleared on adoption")
		}
	})

	t.Run("no-op when the file has not changed", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, t.TempDir())
		if _, err := svc.CreateBoard("mine", nil, nil); err != nil {
			t.Fatal(err)
		}

		if err := svc.HandleExternalChange(); err != nil {
			t.Fatalf("handle external change: %v", err)
		}
		if len(svc.ListBoards()) != 1 {
			t.Error("snapshot should be untouched")
		}
	})
}

func TestService_PersistenceDisabledAfterBadLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "kanban.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig(dir)
	st := store.NewFileStore(cfg.DataFile, testutil.FixedClock())
	svc := kanban.NewService(st, history.NewManager(10), store.LastWriteWins{}, nil,
		discardLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator(), cfg)

	if err := svc.Load(); err == nil {
		t.Fatal("loading garbage should fail")
	}
	if !svc.PersistenceDisabled() {
		t.Fatal("failed load should disable persistence")
	}

	// Commands still work in memory; the broken file is left alone.
	if _, err := svc.CreateBoard("work", nil, nil); err != nil {
		t.Fatalf("in-memory command: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "not json" {
		t.Error("disabled persistence must not touch the file")
	}
}

func TestService_ListCardsSorting(t *testing.T) {
	prepare := func(t *testing.T) (*kanban.Service, uuid.UUID, uuid.UUID) {
		t.Helper()
		svc := newService(t, t.TempDir())
		boardID, _ := svc.CreateBoard("work", nil, nil)
		colID, _ := svc.CreateColumn(boardID, "todo", nil)
		return svc, boardID, colID
	}
	setPriority := func(t *testing.T, svc *kanban.Service, id uuid.UUID, p domain.CardPriority) {
		t.Helper()
		if err := svc.UpdateCard(id, domain.CardUpdate{Priority: &p}); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("board sort preference drives ordering", func(t *testing.T) {
		t.Parallel()
		svc, boardID, colID := prepare(t)
		low, _ := svc.CreateCard(boardID, colID, "low")
		high, _ := svc.CreateCard(boardID, colID, "high")
		setPriority(t, svc, low, domain.PriorityLow)
		setPriority(t, svc, high, domain.PriorityHigh)
		if err := svc.SetBoardTaskSort(boardID, domain.SortFieldPriority, domain.SortDescending); err != nil {
			t.Fatal(err)
		}

		cards, err := svc.ListCards(domain.CardFilter{BoardID: &boardID})
		if err != nil {
			t.Fatal(err)
		}
		if cards[0].ID != high || cards[1].ID != low {
			t.Errorf("order = [%s %s], want high first", cards[0].Title, cards[1].Title)
		}
	})

	t.Run("cards without points sink to the end", func(t *testing.T) {
		t.Parallel()
		svc, boardID, colID := prepare(t)
		pointed, _ := svc.CreateCard(boardID, colID, "pointed")
		unpointed, _ := svc.CreateCard(boardID, colID, "unpointed")
		if err := svc.UpdateCard(pointed, domain.CardUpdate{Points: domain.Set(5)}); err != nil {
			t.Fatal(err)
		}
		if err := svc.SetBoardTaskSort(boardID, domain.SortFieldPoints, domain.SortDescending); err != nil {
			t.Fatal(err)
		}

		cards, err := svc.ListCards(domain.CardFilter{BoardID: &boardID})
		if err != nil {
			t.Fatal(err)
		}
		if cards[len(cards)-1].ID != unpointed {
			t.Error("the unpointed card should sort last even descending")
		}
	})

	t.Run("status filter narrows results", func(t *testing.T) {
		t.Parallel()
		svc, boardID, colID := prepare(t)
		done, _ := svc.CreateCard(boardID, colID, "done")
		svc.CreateCard(boardID, colID, "open")
		st := domain.StatusDone
		if err := svc.UpdateCard(done, domain.CardUpdate{Status: &st}); err != nil {
			t.Fatal(err)
		}

		cards, err := svc.ListCards(domain.CardFilter{BoardID: &boardID, Status: &st})
		if err != nil {
			t.Fatal(err)
		}
		if len(cards) != 1 || cards[0].ID != done {
			t.Fatalf("filtered cards = %d, want just the done one", len(cards))
		}
	})
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newService(t, t.TempDir())
	boardID, _ := svc.CreateBoard("work", nil, nil)
	colID, _ := svc.CreateColumn(boardID, "todo", nil)
	cardID, _ := svc.CreateCard(boardID, colID, "task")
	if _, err := svc.CreateSprint(boardID, nil, nil); err != nil {
		t.Fatal(err)
	}

	exp, err := svc.ExportBoard(boardID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := svc.DeleteBoard(boardID); err != nil {
		t.Fatal(err)
	}

	if err := svc.ImportBoard(exp); err != nil {
		t.Fatalf("import: %v", err)
	}

	card, err := svc.GetCard(cardID)
	if err != nil {
		t.Fatalf("imported card missing: %v", err)
	}
	if card.Title != "task" {
		t.Errorf("title = %q, want task", card.Title)
	}
	sprints, err := svc.ListSprints(boardID)
	if err != nil || len(sprints) != 1 {
		t.Fatalf("sprints = %d (err %v), want 1", len(sprints), err)
	}

	// Re-importing collides on every id.
	if err := svc.ImportBoard(exp); !core.IsKind(err, core.KindValidation) {
		t.Errorf("duplicate import = %v, want validation error", err)
	}
}

func TestService_Dependencies(t *testing.T) {
	t.Parallel()
	svc := newService(t, t.TempDir())
	boardID, _ := svc.CreateBoard("work", nil, nil)
	colID, _ := svc.CreateColumn(boardID, "todo", nil)
	a, _ := svc.CreateCard(boardID, colID, "a")
	b, _ := svc.CreateCard(boardID, colID, "b")

	if err := svc.AddDependency(a, b, domain.EdgeBlocks); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	// a blocks b, so the cycle-closing edge is rejected.
	if err := svc.AddDependency(b, a, domain.EdgeBlocks); !core.IsKind(err, core.KindValidation) {
		t.Fatalf("cycle edge = %v, want validation error", err)
	}

	blockers, err := svc.Blockers(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(blockers) != 1 || blockers[0] != a {
		t.Fatalf("blockers = %v, want [a]", blockers)
	}

	if err := svc.RemoveDependency(a, b); err != nil {
		t.Fatal(err)
	}
	blockers, _ = svc.Blockers(b)
	if len(blockers) != 0 {
		t.Error("removed edge should not be traversed")
	}
}
