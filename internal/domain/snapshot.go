package domain

import (
	"github.com/google/uuid"
)

// Snapshot is the complete in-memory state at one instant: the unit of
// persistence, of undo/redo capture, and of import/export. It owns every
// record; all cross-references are by id.
//
// Every collection tolerates being absent in serialized input, so a
// freshly initialised file ({"boards":[]}) and older partial documents
// both load cleanly.
type Snapshot struct {
	Boards        []Board         `json:"boards"`
	Columns       []Column        `json:"columns"`
	Cards         []Card          `json:"cards"`
	ArchivedCards []ArchivedCard  `json:"archived_cards"`
	Sprints       []Sprint        `json:"sprints"`
	Graph         DependencyGraph `json:"graph"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot { return &Snapshot{} }

// IsEmpty reports whether all collections are empty. The persistence
// layer uses this as a guard against clobbering a populated file with
// nothing.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Boards) == 0 &&
		len(s.Columns) == 0 &&
		len(s.Cards) == 0 &&
		len(s.ArchivedCards) == 0 &&
		len(s.Sprints) == 0
}

// Clone deep-copies the snapshot for history capture. O(n) in the number
// of records.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Boards:        make([]Board, len(s.Boards)),
		Columns:       append([]Column(nil), s.Columns...),
		Cards:         make([]Card, len(s.Cards)),
		ArchivedCards: make([]ArchivedCard, len(s.ArchivedCards)),
		Sprints:       make([]Sprint, len(s.Sprints)),
	}
	for i := range s.Boards {
		b := s.Boards[i]
		b.SprintNames = append([]string(nil), b.SprintNames...)
		b.Description = clonePtr(b.Description)
		b.SprintPrefix = clonePtr(b.SprintPrefix)
		b.CardPrefix = clonePtr(b.CardPrefix)
		b.SprintDurationDays = clonePtr(b.SprintDurationDays)
		b.ActiveSprintID = clonePtr(b.ActiveSprintID)
		out.Boards[i] = b
	}
	for i := range out.Columns {
		out.Columns[i].WIPLimit = clonePtr(out.Columns[i].WIPLimit)
	}
	for i := range s.Cards {
		out.Cards[i] = cloneCard(s.Cards[i])
	}
	for i := range s.ArchivedCards {
		a := s.ArchivedCards[i]
		a.Card = cloneCard(a.Card)
		out.ArchivedCards[i] = a
	}
	for i := range s.Sprints {
		sp := s.Sprints[i]
		sp.NameIndex = clonePtr(sp.NameIndex)
		sp.Prefix = clonePtr(sp.Prefix)
		sp.CardPrefix = clonePtr(sp.CardPrefix)
		sp.StartDate = clonePtr(sp.StartDate)
		sp.EndDate = clonePtr(sp.EndDate)
		out.Sprints[i] = sp
	}
	out.Graph.Cards.Edges = make([]Edge, len(s.Graph.Cards.Edges))
	for i := range s.Graph.Cards.Edges {
		e := s.Graph.Cards.Edges[i]
		e.Weight = clonePtr(e.Weight)
		e.ArchivedAt = clonePtr(e.ArchivedAt)
		out.Graph.Cards.Edges[i] = e
	}
	return out
}

func cloneCard(c Card) Card {
	c.Description = clonePtr(c.Description)
	c.Points = clonePtr(c.Points)
	c.DueDate = clonePtr(c.DueDate)
	c.SprintID = clonePtr(c.SprintID)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// BoardByID returns the board with the given id, or nil.
func (s *Snapshot) BoardByID(id uuid.UUID) *Board {
	for i := range s.Boards {
		if s.Boards[i].ID == id {
			return &s.Boards[i]
		}
	}
	return nil
}

// ColumnByID returns the column with the given id, or nil.
func (s *Snapshot) ColumnByID(id uuid.UUID) *Column {
	for i := range s.Columns {
		if s.Columns[i].ID == id {
			return &s.Columns[i]
		}
	}
	return nil
}

// CardByID returns the live card with the given id, or nil.
func (s *Snapshot) CardByID(id uuid.UUID) *Card {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return &s.Cards[i]
		}
	}
	return nil
}

// ArchivedCardByID returns the archived card with the given id, or nil.
func (s *Snapshot) ArchivedCardByID(id uuid.UUID) *ArchivedCard {
	for i := range s.ArchivedCards {
		if s.ArchivedCards[i].Card.ID == id {
			return &s.ArchivedCards[i]
		}
	}
	return nil
}

// SprintByID returns the sprint with the given id, or nil.
func (s *Snapshot) SprintByID(id uuid.UUID) *Sprint {
	for i := range s.Sprints {
		if s.Sprints[i].ID == id {
			return &s.Sprints[i]
		}
	}
	return nil
}

// NextCardPosition returns one past the highest position in a column.
func (s *Snapshot) NextCardPosition(columnID uuid.UUID) int {
	next := 0
	for i := range s.Cards {
		if s.Cards[i].ColumnID == columnID && s.Cards[i].Position >= next {
			next = s.Cards[i].Position + 1
		}
	}
	return next
}

// NextColumnPosition returns one past the highest position on a board.
func (s *Snapshot) NextColumnPosition(boardID uuid.UUID) int {
	next := 0
	for i := range s.Columns {
		if s.Columns[i].BoardID == boardID && s.Columns[i].Position >= next {
			next = s.Columns[i].Position + 1
		}
	}
	return next
}

// ColumnHasCards reports whether any live or archived card still
// references the column.
func (s *Snapshot) ColumnHasCards(columnID uuid.UUID) bool {
	for i := range s.Cards {
		if s.Cards[i].ColumnID == columnID {
			return true
		}
	}
	for i := range s.ArchivedCards {
		if s.ArchivedCards[i].Card.ColumnID == columnID ||
			s.ArchivedCards[i].OriginalColumnID == columnID {
			return true
		}
	}
	return false
}
