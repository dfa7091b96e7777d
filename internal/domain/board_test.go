package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"kanban/internal/domain"
)

var testNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func TestBoard_Counters(t *testing.T) {
	t.Parallel()
	board := domain.NewBoard(uuid.New(), "work", nil, testNow)

	if got := board.AllocateCardNumber(testNow); got != 1 {
		t.Fatalf("first card number = %d, want 1", got)
	}
	if got := board.AllocateCardNumber(testNow); got != 2 {
		t.Fatalf("second card number = %d, want 2", got)
	}
	if got := board.AllocateSprintNumber(testNow); got != 1 {
		t.Fatalf("first sprint number = %d, want 1", got)
	}
	if board.NextCardNumber != 3 || board.NextSprintNumber != 2 {
		t.Errorf("counters = (%d, %d), want (3, 2)", board.NextCardNumber, board.NextSprintNumber)
	}
}

func TestBoard_SprintNamePool(t *testing.T) {
	t.Run("consumes names in order and reports exhaustion", func(t *testing.T) {
		t.Parallel()
		board := domain.NewBoard(uuid.New(), "work", nil, testNow)
		board.SprintNames = []string{"mercury", "venus"}

		if got := board.ConsumeSprintName(testNow); got != 0 {
			t.Fatalf("first consume = %d, want 0", got)
		}
		if got := board.ConsumeSprintName(testNow); got != 1 {
			t.Fatalf("second consume = %d, want 1", got)
		}
		if got := board.ConsumeSprintName(testNow); got != -1 {
			t.Fatalf("exhausted consume = %d, want -1", got)
		}
	})

	t.Run("explicit name is inserted at the cursor and consumed", func(t *testing.T) {
		t.Parallel()
		board := domain.NewBoard(uuid.New(), "work", nil, testNow)
		board.SprintNames = []string{"mercury", "venus"}
		board.ConsumeSprintName(testNow)

		idx := board.AddSprintName("earth", testNow)

		if idx != 1 {
			t.Fatalf("inserted index = %d, want 1", idx)
		}
		want := []string{"mercury", "earth", "venus"}
		for i, name := range want {
			if board.SprintNames[i] != name {
				t.Fatalf("pool = %v, want %v", board.SprintNames, want)
			}
		}
		// The next pool name is still venus.
		if got := board.ConsumeSprintName(testNow); got != 2 {
			t.Fatalf("next consume = %d, want 2", got)
		}
	})
}

func TestBoard_EffectivePrefixes(t *testing.T) {
	t.Parallel()
	board := domain.NewBoard(uuid.New(), "work", nil, testNow)

	if got := board.EffectiveCardPrefix("card"); got != "card" {
		t.Errorf("default card prefix = %q, want card", got)
	}
	prefix := "WRK"
	board.CardPrefix = &prefix
	if got := board.EffectiveCardPrefix("card"); got != "WRK" {
		t.Errorf("override card prefix = %q, want WRK", got)
	}
}

func TestBoard_Apply(t *testing.T) {
	t.Parallel()
	board := domain.NewBoard(uuid.New(), "work", nil, testNow)
	later := testNow.Add(time.Hour)

	name := "renamed"
	field := domain.SortFieldPriority
	order := domain.SortDescending
	board.Apply(domain.BoardUpdate{
		Name:          &name,
		Description:   domain.Set("notes"),
		TaskSortField: &field,
		TaskSortOrder: &order,
	}, later)

	if board.Name != "renamed" {
		t.Errorf("name = %q, want renamed", board.Name)
	}
	if board.Description == nil || *board.Description != "notes" {
		t.Errorf("description = %v, want notes", board.Description)
	}
	if board.TaskSortField != domain.SortFieldPriority || board.TaskSortOrder != domain.SortDescending {
		t.Errorf("sort = (%s, %s), want (Priority, Descending)", board.TaskSortField, board.TaskSortOrder)
	}
	if !board.UpdatedAt.Equal(later) {
		t.Errorf("updated at = %v, want %v", board.UpdatedAt, later)
	}
}
