package command

import (
	"fmt"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// CreateColumn adds a column to a board. When Position is nil the column
// is appended after the board's current columns.
type CreateColumn struct {
	BoardID  uuid.UUID
	Name     string
	Position *int

	CreatedID uuid.UUID
}

func (c *CreateColumn) Execute(ctx *Context) error {
	if ctx.Snapshot.BoardByID(c.BoardID) == nil {
		return core.NotFoundf("board %s", c.BoardID)
	}
	if c.Name == "" {
		return core.Validationf("column name must not be empty")
	}
	position := ctx.Snapshot.NextColumnPosition(c.BoardID)
	if c.Position != nil {
		position = *c.Position
	}
	col := domain.NewColumn(ctx.IDs.NewID(), c.BoardID, c.Name, position, ctx.Clock.Now())
	ctx.Snapshot.Columns = append(ctx.Snapshot.Columns, col)
	c.CreatedID = col.ID
	return nil
}

func (c *CreateColumn) Description() string {
	return fmt.Sprintf("Create column %q", c.Name)
}

// UpdateColumn applies a partial update to a column.
type UpdateColumn struct {
	ColumnID uuid.UUID
	Updates  domain.ColumnUpdate
}

func (c *UpdateColumn) Execute(ctx *Context) error {
	col := ctx.Snapshot.ColumnByID(c.ColumnID)
	if col == nil {
		return core.NotFoundf("column %s", c.ColumnID)
	}
	if v, ok := c.Updates.WIPLimit.Value(); ok && v < 0 {
		return core.Validationf("wip limit must not be negative")
	}
	col.Apply(c.Updates, ctx.Clock.Now())
	return nil
}

func (c *UpdateColumn) Description() string { return "Update column" }

// DeleteColumn removes an empty column. It is rejected while any live or
// archived card still references the column.
type DeleteColumn struct {
	ColumnID uuid.UUID
}

func (c *DeleteColumn) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	if snap.ColumnByID(c.ColumnID) == nil {
		return core.NotFoundf("column %s", c.ColumnID)
	}
	if snap.ColumnHasCards(c.ColumnID) {
		return core.Validationf("column %s still holds cards", c.ColumnID)
	}
	kept := snap.Columns[:0]
	for _, col := range snap.Columns {
		if col.ID != c.ColumnID {
			kept = append(kept, col)
		}
	}
	snap.Columns = kept
	return nil
}

func (c *DeleteColumn) Description() string {
	return fmt.Sprintf("Delete column %s", c.ColumnID)
}

// ReorderColumn moves a column to a new position slot.
type ReorderColumn struct {
	ColumnID uuid.UUID
	Position int
}

func (c *ReorderColumn) Execute(ctx *Context) error {
	col := ctx.Snapshot.ColumnByID(c.ColumnID)
	if col == nil {
		return core.NotFoundf("column %s", c.ColumnID)
	}
	col.SetPosition(c.Position, ctx.Clock.Now())
	return nil
}

func (c *ReorderColumn) Description() string {
	return fmt.Sprintf("Reorder column %s to position %d", c.ColumnID, c.Position)
}
