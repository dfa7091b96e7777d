package command

import (
	"fmt"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// CreateBoard adds a new top-level board. CreatedID is set on success.
type CreateBoard struct {
	Name       string
	Desc       *string
	CardPrefix *string

	CreatedID uuid.UUID
}

func (c *CreateBoard) Execute(ctx *Context) error {
	if c.Name == "" {
		return core.Validationf("board name must not be empty")
	}
	now := ctx.Clock.Now()
	board := domain.NewBoard(ctx.IDs.NewID(), c.Name, c.Desc, now)
	if c.CardPrefix != nil {
		prefix := *c.CardPrefix
		board.CardPrefix = &prefix
	}
	ctx.Snapshot.Boards = append(ctx.Snapshot.Boards, board)
	c.CreatedID = board.ID
	return nil
}

func (c *CreateBoard) Description() string {
	return fmt.Sprintf("Create board %q", c.Name)
}

// UpdateBoard applies a partial update to a board.
type UpdateBoard struct {
	BoardID uuid.UUID
	Updates domain.BoardUpdate
}

func (c *UpdateBoard) Execute(ctx *Context) error {
	board := ctx.Snapshot.BoardByID(c.BoardID)
	if board == nil {
		return core.NotFoundf("board %s", c.BoardID)
	}
	if v, ok := c.Updates.ActiveSprintID.Value(); ok {
		sprint := ctx.Snapshot.SprintByID(v)
		if sprint == nil {
			return core.NotFoundf("sprint %s", v)
		}
		if sprint.BoardID != c.BoardID {
			return core.Validationf("sprint %s belongs to another board", v)
		}
	}
	board.Apply(c.Updates, ctx.Clock.Now())
	return nil
}

func (c *UpdateBoard) Description() string { return "Update board" }

// DeleteBoard removes a board and cascades to its columns, cards,
// archived cards, sprints, and any graph edges touching those cards.
type DeleteBoard struct {
	BoardID uuid.UUID
}

func (c *DeleteBoard) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	if snap.BoardByID(c.BoardID) == nil {
		return core.NotFoundf("board %s", c.BoardID)
	}

	ownedColumns := make(map[uuid.UUID]bool)
	for i := range snap.Columns {
		if snap.Columns[i].BoardID == c.BoardID {
			ownedColumns[snap.Columns[i].ID] = true
		}
	}

	var removedCards []uuid.UUID
	liveKept := snap.Cards[:0]
	for _, card := range snap.Cards {
		if ownedColumns[card.ColumnID] {
			removedCards = append(removedCards, card.ID)
		} else {
			liveKept = append(liveKept, card)
		}
	}
	snap.Cards = liveKept

	archivedKept := snap.ArchivedCards[:0]
	for _, ac := range snap.ArchivedCards {
		if ownedColumns[ac.Card.ColumnID] || ownedColumns[ac.OriginalColumnID] {
			removedCards = append(removedCards, ac.Card.ID)
		} else {
			archivedKept = append(archivedKept, ac)
		}
	}
	snap.ArchivedCards = archivedKept

	colsKept := snap.Columns[:0]
	for _, col := range snap.Columns {
		if col.BoardID != c.BoardID {
			colsKept = append(colsKept, col)
		}
	}
	snap.Columns = colsKept

	sprintsKept := snap.Sprints[:0]
	for _, sp := range snap.Sprints {
		if sp.BoardID != c.BoardID {
			sprintsKept = append(sprintsKept, sp)
		}
	}
	snap.Sprints = sprintsKept

	for _, id := range removedCards {
		snap.Graph.Cards.RemoveNode(id)
	}

	boardsKept := snap.Boards[:0]
	for _, b := range snap.Boards {
		if b.ID != c.BoardID {
			boardsKept = append(boardsKept, b)
		}
	}
	snap.Boards = boardsKept
	return nil
}

func (c *DeleteBoard) Description() string {
	return fmt.Sprintf("Delete board %s", c.BoardID)
}

// SetBoardTaskSort updates a board's task sort preference.
type SetBoardTaskSort struct {
	BoardID uuid.UUID
	Field   domain.SortField
	Order   domain.SortOrder
}

func (c *SetBoardTaskSort) Execute(ctx *Context) error {
	board := ctx.Snapshot.BoardByID(c.BoardID)
	if board == nil {
		return core.NotFoundf("board %s", c.BoardID)
	}
	board.SetTaskSort(c.Field, c.Order, ctx.Clock.Now())
	return nil
}

func (c *SetBoardTaskSort) Description() string {
	return fmt.Sprintf("Set board task sort to %s %s", c.Field, c.Order)
}

// SetBoardTaskListView updates a board's task list presentation.
type SetBoardTaskListView struct {
	BoardID uuid.UUID
	View    domain.TaskListView
}

func (c *SetBoardTaskListView) Execute(ctx *Context) error {
	board := ctx.Snapshot.BoardByID(c.BoardID)
	if board == nil {
		return core.NotFoundf("board %s", c.BoardID)
	}
	board.SetTaskListView(c.View, ctx.Clock.Now())
	return nil
}

func (c *SetBoardTaskListView) Description() string {
	return fmt.Sprintf("Set board task list view to %s", c.View)
}
