package domain_test

import (
	"testing"

	"github.com/google/uuid"

	"kanban/internal/domain"
)

func buildSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	snap := domain.NewSnapshot()
	board := domain.NewBoard(uuid.New(), "work", nil, testNow)
	board.SprintNames = []string{"mercury", "venus"}
	col := domain.NewColumn(uuid.New(), board.ID, "todo", 0, testNow)
	card := domain.NewCard(uuid.New(), col.ID, "task", 0, board.AllocateCardNumber(testNow), testNow)
	sprint := domain.NewSprint(uuid.New(), board.ID, board.AllocateSprintNumber(testNow), nil, nil, testNow)

	snap.Boards = append(snap.Boards, board)
	snap.Columns = append(snap.Columns, col)
	snap.Cards = append(snap.Cards, card)
	snap.Sprints = append(snap.Sprints, sprint)
	snap.Graph.Cards.AddEdge(card.ID, uuid.New(), domain.EdgeRelatesTo, testNow)
	return snap
}

func TestSnapshot_Clone(t *testing.T) {
	t.Run("mutating the clone leaves the original alone", func(t *testing.T) {
		t.Parallel()
		snap := buildSnapshot(t)
		clone := snap.Clone()

		clone.Boards[0].Name = "changed"
		clone.Boards[0].SprintNames[0] = "pluto"
		clone.Cards[0].Title = "changed"
		desc := "added"
		clone.Cards[0].Description = &desc
		clone.Graph.Cards.Edges[0].ArchivedAt = &testNow

		if snap.Boards[0].Name != "work" {
			t.Error("board name leaked into original")
		}
		if snap.Boards[0].SprintNames[0] != "mercury" {
			t.Error("sprint name pool shares backing array with clone")
		}
		if snap.Cards[0].Title != "task" || snap.Cards[0].Description != nil {
			t.Error("card mutation leaked into original")
		}
		if snap.Graph.Cards.Edges[0].ArchivedAt != nil {
			t.Error("edge mutation leaked into original")
		}
	})

	t.Run("name pool insert on the original cannot grow into the clone", func(t *testing.T) {
		t.Parallel()
		snap := buildSnapshot(t)
		clone := snap.Clone()

		// AddSprintName splices into the middle; with a shared backing
		// array this would overwrite the clone's pool.
		snap.Boards[0].AddSprintName("earth", testNow)

		if clone.Boards[0].SprintNames[0] != "mercury" || clone.Boards[0].SprintNames[1] != "venus" {
			t.Fatalf("clone pool = %v, want [mercury venus]", clone.Boards[0].SprintNames)
		}
	})
}

func TestSnapshot_Lookups(t *testing.T) {
	t.Parallel()
	snap := buildSnapshot(t)

	if snap.BoardByID(snap.Boards[0].ID) == nil {
		t.Error("board lookup failed")
	}
	if snap.BoardByID(uuid.New()) != nil {
		t.Error("unknown board lookup should return nil")
	}
	if snap.CardByID(snap.Cards[0].ID) == nil {
		t.Error("card lookup failed")
	}
}

func TestSnapshot_Positions(t *testing.T) {
	t.Parallel()
	snap := buildSnapshot(t)
	colID := snap.Columns[0].ID

	if got := snap.NextCardPosition(colID); got != 1 {
		t.Fatalf("next card position = %d, want 1", got)
	}
	if got := snap.NextCardPosition(uuid.New()); got != 0 {
		t.Fatalf("empty column position = %d, want 0", got)
	}
	if !snap.ColumnHasCards(colID) {
		t.Error("column with a card should report cards")
	}
}

func TestSnapshot_IsEmpty(t *testing.T) {
	t.Parallel()
	if !domain.NewSnapshot().IsEmpty() {
		t.Error("fresh snapshot should be empty")
	}
	if buildSnapshot(t).IsEmpty() {
		t.Error("populated snapshot should not be empty")
	}
}
