package command

import (
	"fmt"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// ImportBoard inserts an exported board and everything it owns. All ids
// are validated against the snapshot before anything is inserted, so a
// colliding document changes nothing.
type ImportBoard struct {
	Export *domain.BoardExport
}

func (c *ImportBoard) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	exp := c.Export
	if exp == nil {
		return core.Validationf("import document is empty")
	}
	if exp.Board.Name == "" {
		return core.Validationf("imported board has no name")
	}

	if snap.BoardByID(exp.Board.ID) != nil {
		return core.Validationf("board %s already exists", exp.Board.ID)
	}
	owned := make(map[uuid.UUID]bool, len(exp.Columns))
	for i := range exp.Columns {
		col := &exp.Columns[i]
		if col.BoardID != exp.Board.ID {
			return core.Validationf("column %s does not belong to imported board", col.ID)
		}
		if snap.ColumnByID(col.ID) != nil {
			return core.Validationf("column %s already exists", col.ID)
		}
		owned[col.ID] = true
	}
	for i := range exp.Cards {
		card := &exp.Cards[i]
		if !owned[card.ColumnID] {
			return core.Validationf("card %s references a column outside the imported board", card.ID)
		}
		if snap.CardByID(card.ID) != nil || snap.ArchivedCardByID(card.ID) != nil {
			return core.Validationf("card %s already exists", card.ID)
		}
	}
	for i := range exp.ArchivedCards {
		ac := &exp.ArchivedCards[i]
		if snap.CardByID(ac.Card.ID) != nil || snap.ArchivedCardByID(ac.Card.ID) != nil {
			return core.Validationf("card %s already exists", ac.Card.ID)
		}
	}
	for i := range exp.Sprints {
		sp := &exp.Sprints[i]
		if sp.BoardID != exp.Board.ID {
			return core.Validationf("sprint %s does not belong to imported board", sp.ID)
		}
		if snap.SprintByID(sp.ID) != nil {
			return core.Validationf("sprint %s already exists", sp.ID)
		}
	}

	snap.Boards = append(snap.Boards, exp.Board)
	snap.Columns = append(snap.Columns, exp.Columns...)
	snap.Cards = append(snap.Cards, exp.Cards...)
	snap.ArchivedCards = append(snap.ArchivedCards, exp.ArchivedCards...)
	snap.Sprints = append(snap.Sprints, exp.Sprints...)
	return nil
}

func (c *ImportBoard) Description() string {
	if c.Export == nil {
		return "Import board"
	}
	return fmt.Sprintf("Import board %q", c.Export.Board.Name)
}
