package domain

import (
	"time"

	"github.com/google/uuid"
)

// Column is an ordered lane on a board. Position is the ordering key;
// ties are broken by creation time.
type Column struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	WIPLimit  *int      `json:"wip_limit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewColumn creates a column on the given board.
func NewColumn(id, boardID uuid.UUID, name string, position int, now time.Time) Column {
	return Column{
		ID:        id,
		BoardID:   boardID,
		Name:      name,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetPosition moves the column to a new ordering slot.
func (c *Column) SetPosition(position int, now time.Time) {
	c.Position = position
	c.UpdatedAt = now
}

// ColumnUpdate is a partial update applied with Column.Apply.
type ColumnUpdate struct {
	Name     *string
	Position *int
	WIPLimit FieldUpdate[int]
}

// Apply merges the update into the column and refreshes UpdatedAt.
func (c *Column) Apply(u ColumnUpdate, now time.Time) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Position != nil {
		c.Position = *u.Position
	}
	u.WIPLimit.Apply(&c.WIPLimit)
	c.UpdatedAt = now
}
