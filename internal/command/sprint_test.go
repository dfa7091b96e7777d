package command_test

import (
	"testing"

	"github.com/google/uuid"

	"kanban/internal/command"
	"kanban/internal/core"
	"kanban/internal/domain"
)

func TestCreateSprint(t *testing.T) {
	t.Run("explicit name lands in the board's pool", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		name := "mercury"

		cmd := &command.CreateSprint{BoardID: f.boardID, Name: &name}
		if err := cmd.Execute(f.ctx); err != nil {
			t.Fatalf("create sprint: %v", err)
		}

		sprint := f.ctx.Snapshot.SprintByID(cmd.CreatedID)
		board := f.ctx.Snapshot.BoardByID(f.boardID)
		if sprint.SprintNumber != 1 {
			t.Errorf("sprint number = %d, want 1", sprint.SprintNumber)
		}
		if got := sprint.Name(board); got != "mercury" {
			t.Errorf("name = %q, want mercury", got)
		}
	})

	t.Run("unnamed sprint consumes the next pool name", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		board := f.ctx.Snapshot.BoardByID(f.boardID)
		board.SprintNames = []string{"venus"}

		cmd := &command.CreateSprint{BoardID: f.boardID}
		if err := cmd.Execute(f.ctx); err != nil {
			t.Fatal(err)
		}

		sprint := f.ctx.Snapshot.SprintByID(cmd.CreatedID)
		if got := sprint.Name(f.ctx.Snapshot.BoardByID(f.boardID)); got != "venus" {
			t.Errorf("name = %q, want venus", got)
		}
	})

	t.Run("exhausted pool leaves the sprint unnamed", func(t *testing.T) {
		t.Parallel()
		f := setup(t)

		cmd := &command.CreateSprint{BoardID: f.boardID}
		if err := cmd.Execute(f.ctx); err != nil {
			t.Fatal(err)
		}

		if f.ctx.Snapshot.SprintByID(cmd.CreatedID).NameIndex != nil {
			t.Error("sprint should be unnamed when the pool is empty")
		}
	})
}

func TestActivateSprint(t *testing.T) {
	newSprint := func(t *testing.T, f *fixture) uuid.UUID {
		t.Helper()
		cmd := &command.CreateSprint{BoardID: f.boardID}
		if err := cmd.Execute(f.ctx); err != nil {
			t.Fatal(err)
		}
		return cmd.CreatedID
	}

	t.Run("sets the timebox and the board's active pointer", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		id := newSprint(t, f)

		err := (&command.ActivateSprint{SprintID: id, DefaultDurationDays: 14}).Execute(f.ctx)
		if err != nil {
			t.Fatalf("activate: %v", err)
		}

		sprint := f.ctx.Snapshot.SprintByID(id)
		if sprint.Status != domain.SprintActive {
			t.Fatalf("status = %s, want Active", sprint.Status)
		}
		board := f.ctx.Snapshot.BoardByID(f.boardID)
		if board.ActiveSprintID == nil || *board.ActiveSprintID != id {
			t.Error("board should point at the active sprint")
		}
	})

	t.Run("board duration overrides the default", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		id := newSprint(t, f)
		dur := 7
		f.ctx.Snapshot.BoardByID(f.boardID).SprintDurationDays = &dur

		if err := (&command.ActivateSprint{SprintID: id, DefaultDurationDays: 14}).Execute(f.ctx); err != nil {
			t.Fatal(err)
		}

		sprint := f.ctx.Snapshot.SprintByID(id)
		want := sprint.StartDate.AddDate(0, 0, 7)
		if !sprint.EndDate.Equal(want) {
			t.Errorf("end = %v, want %v", sprint.EndDate, want)
		}
	})

	t.Run("double activation is rejected", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		id := newSprint(t, f)
		(&command.ActivateSprint{SprintID: id, DefaultDurationDays: 14}).Execute(f.ctx)

		err := (&command.ActivateSprint{SprintID: id, DefaultDurationDays: 14}).Execute(f.ctx)

		if !core.IsKind(err, core.KindValidation) {
			t.Fatalf("got %v, want validation error", err)
		}
	})
}

func TestCompleteAndCancelSprint(t *testing.T) {
	t.Run("completing clears the board's active pointer", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		create := &command.CreateSprint{BoardID: f.boardID}
		create.Execute(f.ctx)
		(&command.ActivateSprint{SprintID: create.CreatedID, DefaultDurationDays: 14}).Execute(f.ctx)

		if err := (&command.CompleteSprint{SprintID: create.CreatedID}).Execute(f.ctx); err != nil {
			t.Fatalf("complete: %v", err)
		}

		if f.ctx.Snapshot.BoardByID(f.boardID).ActiveSprintID != nil {
			t.Error("active pointer should be cleared")
		}
	})

	t.Run("completing a planning sprint is rejected", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		create := &command.CreateSprint{BoardID: f.boardID}
		create.Execute(f.ctx)

		err := (&command.CompleteSprint{SprintID: create.CreatedID}).Execute(f.ctx)

		if !core.IsKind(err, core.KindValidation) {
			t.Fatalf("got %v, want validation error", err)
		}
	})

	t.Run("cancelling from planning is allowed", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		create := &command.CreateSprint{BoardID: f.boardID}
		create.Execute(f.ctx)

		if err := (&command.CancelSprint{SprintID: create.CreatedID}).Execute(f.ctx); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if got := f.ctx.Snapshot.SprintByID(create.CreatedID).Status; got != domain.SprintCancelled {
			t.Errorf("status = %s, want Cancelled", got)
		}
	})
}

func TestDeleteSprint(t *testing.T) {
	t.Parallel()
	f := setup(t)
	cardID := f.createCard(t, "one")
	create := &command.CreateSprint{BoardID: f.boardID}
	create.Execute(f.ctx)
	(&command.ActivateSprint{SprintID: create.CreatedID, DefaultDurationDays: 14}).Execute(f.ctx)
	(&command.AssignCardToSprint{CardID: cardID, SprintID: create.CreatedID}).Execute(f.ctx)

	if err := (&command.DeleteSprint{SprintID: create.CreatedID}).Execute(f.ctx); err != nil {
		t.Fatalf("delete sprint: %v", err)
	}

	if f.ctx.Snapshot.CardByID(cardID).SprintID != nil {
		t.Error("card should be unassigned")
	}
	if f.ctx.Snapshot.BoardByID(f.boardID).ActiveSprintID != nil {
		t.Error("active pointer should be cleared")
	}
	if len(f.ctx.Snapshot.Sprints) != 0 {
		t.Error("sprint should be gone")
	}
}

func TestAssignCardToSprint(t *testing.T) {
	t.Run("rejects a sprint from another board", func(t *testing.T) {
		t.Parallel()
		f := setup(t)
		cardID := f.createCard(t, "one")
		other := &command.CreateBoard{Name: "other"}
		other.Execute(f.ctx)
		sprint := &command.CreateSprint{BoardID: other.CreatedID}
		sprint.Execute(f.ctx)

		err := (&command.AssignCardToSprint{CardID: cardID, SprintID: sprint.CreatedID}).Execute(f.ctx)

		if !core.IsKind(err, core.KindValidation) {
			t.Fatalf("got %v, want validation error", err)
		}
	})
}
