package domain

import (
	"time"

	"github.com/google/uuid"
)

// CardPriority is the urgency bucket of a card.
type CardPriority string

const (
	PriorityLow      CardPriority = "Low"
	PriorityMedium   CardPriority = "Medium"
	PriorityHigh     CardPriority = "High"
	PriorityCritical CardPriority = "Critical"
)

// CardStatus is the work state of a card.
type CardStatus string

const (
	StatusTodo       CardStatus = "Todo"
	StatusInProgress CardStatus = "InProgress"
	StatusBlocked    CardStatus = "Blocked"
	StatusDone       CardStatus = "Done"
)

// Card is a unit of work living in a column. The board association is
// derived through the column; a card is born from a column and can only
// move to columns of the same board. CardNumber is allocated from the
// board's monotonic counter and never reused.
type Card struct {
	ID          uuid.UUID    `json:"id"`
	ColumnID    uuid.UUID    `json:"column_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Priority    CardPriority `json:"priority"`
	Status      CardStatus   `json:"status"`
	Position    int          `json:"position"`
	Points      *int         `json:"points,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	SprintID    *uuid.UUID   `json:"sprint_id,omitempty"`
	CardNumber  int          `json:"card_number"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewCard creates a card in the given column with defaults
// (medium priority, todo status).
func NewCard(id, columnID uuid.UUID, title string, position, cardNumber int, now time.Time) Card {
	return Card{
		ID:         id,
		ColumnID:   columnID,
		Title:      title,
		Priority:   PriorityMedium,
		Status:     StatusTodo,
		Position:   position,
		CardNumber: cardNumber,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MoveToColumn relocates the card.
func (c *Card) MoveToColumn(columnID uuid.UUID, position int, now time.Time) {
	c.ColumnID = columnID
	c.Position = position
	c.UpdatedAt = now
}

// AssignToSprint associates the card with a sprint.
func (c *Card) AssignToSprint(sprintID uuid.UUID, now time.Time) {
	id := sprintID
	c.SprintID = &id
	c.UpdatedAt = now
}

// UnassignSprint removes the sprint association.
func (c *Card) UnassignSprint(now time.Time) {
	c.SprintID = nil
	c.UpdatedAt = now
}

// CardUpdate is a partial update applied with Card.Apply.
type CardUpdate struct {
	Title       *string
	Description FieldUpdate[string]
	Priority    *CardPriority
	Status      *CardStatus
	Points      FieldUpdate[int]
	DueDate     FieldUpdate[time.Time]
}

// Apply merges the update into the card and refreshes UpdatedAt.
func (c *Card) Apply(u CardUpdate, now time.Time) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	u.Description.Apply(&c.Description)
	if u.Priority != nil {
		c.Priority = *u.Priority
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	u.Points.Apply(&c.Points)
	u.DueDate.Apply(&c.DueDate)
	c.UpdatedAt = now
}

// CardFilter narrows list_cards results. Nil fields match everything.
type CardFilter struct {
	BoardID  *uuid.UUID
	ColumnID *uuid.UUID
	SprintID *uuid.UUID
	Status   *CardStatus
}
