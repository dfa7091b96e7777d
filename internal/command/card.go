package command

import (
	"fmt"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// CreateCard adds a card to a column, allocating the board's next card
// number. The column must belong to the given board.
type CreateCard struct {
	BoardID  uuid.UUID
	ColumnID uuid.UUID
	Title    string

	CreatedID uuid.UUID
}

func (c *CreateCard) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	board := snap.BoardByID(c.BoardID)
	if board == nil {
		return core.NotFoundf("board %s", c.BoardID)
	}
	col := snap.ColumnByID(c.ColumnID)
	if col == nil {
		return core.NotFoundf("column %s", c.ColumnID)
	}
	if col.BoardID != c.BoardID {
		return core.Validationf("column %s belongs to another board", c.ColumnID)
	}
	if c.Title == "" {
		return core.Validationf("card title must not be empty")
	}
	now := ctx.Clock.Now()
	number := board.AllocateCardNumber(now)
	position := snap.NextCardPosition(c.ColumnID)
	card := domain.NewCard(ctx.IDs.NewID(), c.ColumnID, c.Title, position, number, now)
	snap.Cards = append(snap.Cards, card)
	c.CreatedID = card.ID
	return nil
}

func (c *CreateCard) Description() string {
	return fmt.Sprintf("Create card %q", c.Title)
}

// UpdateCard applies a partial update to a live card.
type UpdateCard struct {
	CardID  uuid.UUID
	Updates domain.CardUpdate
}

func (c *UpdateCard) Execute(ctx *Context) error {
	card := ctx.Snapshot.CardByID(c.CardID)
	if card == nil {
		return core.NotFoundf("card %s", c.CardID)
	}
	if v, ok := c.Updates.Points.Value(); ok && v < 0 {
		return core.Validationf("points must not be negative")
	}
	card.Apply(c.Updates, ctx.Clock.Now())
	return nil
}

func (c *UpdateCard) Description() string { return "Update card" }

// MoveCard relocates a card to a column on the same board. When Position
// is nil the card is appended at the end of the target column.
type MoveCard struct {
	CardID   uuid.UUID
	ColumnID uuid.UUID
	Position *int
}

func (c *MoveCard) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	card := snap.CardByID(c.CardID)
	if card == nil {
		return core.NotFoundf("card %s", c.CardID)
	}
	target := snap.ColumnByID(c.ColumnID)
	if target == nil {
		return core.NotFoundf("column %s", c.ColumnID)
	}
	current := snap.ColumnByID(card.ColumnID)
	if current == nil {
		return core.Internalf("card %s references missing column %s", card.ID, card.ColumnID)
	}
	if target.BoardID != current.BoardID {
		return core.Validationf("column %s belongs to another board", c.ColumnID)
	}
	position := snap.NextCardPosition(c.ColumnID)
	if c.Position != nil {
		position = *c.Position
	}
	card.MoveToColumn(c.ColumnID, position, ctx.Clock.Now())
	return nil
}

func (c *MoveCard) Description() string {
	return fmt.Sprintf("Move card %s to column %s", c.CardID, c.ColumnID)
}

// ArchiveCard moves a live card to the archive and archives its edges.
type ArchiveCard struct {
	CardID uuid.UUID
}

func (c *ArchiveCard) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	idx := -1
	for i := range snap.Cards {
		if snap.Cards[i].ID == c.CardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NotFoundf("card %s", c.CardID)
	}
	now := ctx.Clock.Now()
	card := snap.Cards[idx]
	snap.Cards = append(snap.Cards[:idx], snap.Cards[idx+1:]...)
	snap.ArchivedCards = append(snap.ArchivedCards, domain.NewArchivedCard(card, now))
	snap.Graph.Cards.ArchiveNode(c.CardID, now)
	return nil
}

func (c *ArchiveCard) Description() string {
	return fmt.Sprintf("Archive card %s", c.CardID)
}

// RestoreCard returns an archived card to a column: the given one, or
// the column it was archived from.
type RestoreCard struct {
	CardID   uuid.UUID
	ColumnID *uuid.UUID
}

func (c *RestoreCard) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	idx := -1
	for i := range snap.ArchivedCards {
		if snap.ArchivedCards[i].Card.ID == c.CardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NotFoundf("archived card %s", c.CardID)
	}
	targetID := snap.ArchivedCards[idx].OriginalColumnID
	if c.ColumnID != nil {
		targetID = *c.ColumnID
	}
	if snap.ColumnByID(targetID) == nil {
		return core.NotFoundf("column %s", targetID)
	}
	now := ctx.Clock.Now()
	card := snap.ArchivedCards[idx].Card
	snap.ArchivedCards = append(snap.ArchivedCards[:idx], snap.ArchivedCards[idx+1:]...)
	card.MoveToColumn(targetID, snap.NextCardPosition(targetID), now)
	snap.Cards = append(snap.Cards, card)
	snap.Graph.Cards.UnarchiveNode(c.CardID)
	return nil
}

func (c *RestoreCard) Description() string {
	return fmt.Sprintf("Restore card %s", c.CardID)
}

// DeleteCard permanently removes a card, live or archived, together with
// every graph edge touching it.
type DeleteCard struct {
	CardID uuid.UUID
}

func (c *DeleteCard) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	for i := range snap.Cards {
		if snap.Cards[i].ID == c.CardID {
			snap.Cards = append(snap.Cards[:i], snap.Cards[i+1:]...)
			snap.Graph.Cards.RemoveNode(c.CardID)
			return nil
		}
	}
	for i := range snap.ArchivedCards {
		if snap.ArchivedCards[i].Card.ID == c.CardID {
			snap.ArchivedCards = append(snap.ArchivedCards[:i], snap.ArchivedCards[i+1:]...)
			snap.Graph.Cards.RemoveNode(c.CardID)
			return nil
		}
	}
	return core.NotFoundf("card %s", c.CardID)
}

func (c *DeleteCard) Description() string {
	return fmt.Sprintf("Delete card %s", c.CardID)
}

// AssignCardToSprint associates a card with a sprint on the same board.
type AssignCardToSprint struct {
	CardID   uuid.UUID
	SprintID uuid.UUID
}

func (c *AssignCardToSprint) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	card := snap.CardByID(c.CardID)
	if card == nil {
		return core.NotFoundf("card %s", c.CardID)
	}
	sprint := snap.SprintByID(c.SprintID)
	if sprint == nil {
		return core.NotFoundf("sprint %s", c.SprintID)
	}
	col := snap.ColumnByID(card.ColumnID)
	if col == nil {
		return core.Internalf("card %s references missing column %s", card.ID, card.ColumnID)
	}
	if sprint.BoardID != col.BoardID {
		return core.Validationf("sprint %s belongs to another board", c.SprintID)
	}
	card.AssignToSprint(c.SprintID, ctx.Clock.Now())
	return nil
}

func (c *AssignCardToSprint) Description() string {
	return fmt.Sprintf("Assign card %s to sprint %s", c.CardID, c.SprintID)
}

// UnassignCardFromSprint clears a card's sprint association.
type UnassignCardFromSprint struct {
	CardID uuid.UUID
}

func (c *UnassignCardFromSprint) Execute(ctx *Context) error {
	card := ctx.Snapshot.CardByID(c.CardID)
	if card == nil {
		return core.NotFoundf("card %s", c.CardID)
	}
	card.UnassignSprint(ctx.Clock.Now())
	return nil
}

func (c *UnassignCardFromSprint) Description() string {
	return fmt.Sprintf("Unassign card %s from sprint", c.CardID)
}

// BulkArchiveCards archives a set of live cards. All ids are validated
// before the first card moves, so the command is all-or-nothing.
type BulkArchiveCards struct {
	CardIDs []uuid.UUID
}

func (c *BulkArchiveCards) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	for _, id := range c.CardIDs {
		if snap.CardByID(id) == nil {
			return core.NotFoundf("card %s", id)
		}
	}
	for _, id := range c.CardIDs {
		archive := ArchiveCard{CardID: id}
		if err := archive.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *BulkArchiveCards) Description() string {
	return fmt.Sprintf("Archive %d cards", len(c.CardIDs))
}

// BulkMoveCards moves a set of cards to one column, all-or-nothing.
type BulkMoveCards struct {
	CardIDs  []uuid.UUID
	ColumnID uuid.UUID
}

func (c *BulkMoveCards) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	target := snap.ColumnByID(c.ColumnID)
	if target == nil {
		return core.NotFoundf("column %s", c.ColumnID)
	}
	for _, id := range c.CardIDs {
		card := snap.CardByID(id)
		if card == nil {
			return core.NotFoundf("card %s", id)
		}
		col := snap.ColumnByID(card.ColumnID)
		if col == nil {
			return core.Internalf("card %s references missing column %s", id, card.ColumnID)
		}
		if col.BoardID != target.BoardID {
			return core.Validationf("card %s belongs to another board", id)
		}
	}
	now := ctx.Clock.Now()
	for _, id := range c.CardIDs {
		card := snap.CardByID(id)
		card.MoveToColumn(c.ColumnID, snap.NextCardPosition(c.ColumnID), now)
	}
	return nil
}

func (c *BulkMoveCards) Description() string {
	return fmt.Sprintf("Move %d cards to column %s", len(c.CardIDs), c.ColumnID)
}

// BulkAssignSprint assigns a set of cards to one sprint, all-or-nothing.
type BulkAssignSprint struct {
	CardIDs  []uuid.UUID
	SprintID uuid.UUID
}

func (c *BulkAssignSprint) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	sprint := snap.SprintByID(c.SprintID)
	if sprint == nil {
		return core.NotFoundf("sprint %s", c.SprintID)
	}
	for _, id := range c.CardIDs {
		card := snap.CardByID(id)
		if card == nil {
			return core.NotFoundf("card %s", id)
		}
		col := snap.ColumnByID(card.ColumnID)
		if col == nil {
			return core.Internalf("card %s references missing column %s", id, card.ColumnID)
		}
		if col.BoardID != sprint.BoardID {
			return core.Validationf("card %s belongs to another board", id)
		}
	}
	now := ctx.Clock.Now()
	for _, id := range c.CardIDs {
		snap.CardByID(id).AssignToSprint(c.SprintID, now)
	}
	return nil
}

func (c *BulkAssignSprint) Description() string {
	return fmt.Sprintf("Assign %d cards to sprint %s", len(c.CardIDs), c.SprintID)
}
