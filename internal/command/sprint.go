package command

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// CreateSprint adds a sprint in Planning, allocating the board's next
// sprint number. An explicit Name is inserted into the board's name
// pool; otherwise the next unused pool name is consumed, if any.
type CreateSprint struct {
	BoardID uuid.UUID
	Name    *string
	Prefix  *string

	CreatedID uuid.UUID
}

func (c *CreateSprint) Execute(ctx *Context) error {
	board := ctx.Snapshot.BoardByID(c.BoardID)
	if board == nil {
		return core.NotFoundf("board %s", c.BoardID)
	}
	now := ctx.Clock.Now()
	number := board.AllocateSprintNumber(now)

	var nameIndex *int
	if c.Name != nil {
		idx := board.AddSprintName(*c.Name, now)
		nameIndex = &idx
	} else if idx := board.ConsumeSprintName(now); idx >= 0 {
		nameIndex = &idx
	}

	var prefix *string
	if c.Prefix != nil {
		p := *c.Prefix
		prefix = &p
	}

	sprint := domain.NewSprint(ctx.IDs.NewID(), c.BoardID, number, nameIndex, prefix, now)
	ctx.Snapshot.Sprints = append(ctx.Snapshot.Sprints, sprint)
	c.CreatedID = sprint.ID
	return nil
}

func (c *CreateSprint) Description() string {
	return fmt.Sprintf("Create sprint on board %s", c.BoardID)
}

// UpdateSprint applies a partial update to a sprint. A Name is inserted
// into the board's name pool and the sprint repointed at it.
type UpdateSprint struct {
	SprintID uuid.UUID
	Name     *string
	Updates  domain.SprintUpdate
}

func (c *UpdateSprint) Execute(ctx *Context) error {
	sprint := ctx.Snapshot.SprintByID(c.SprintID)
	if sprint == nil {
		return core.NotFoundf("sprint %s", c.SprintID)
	}
	now := ctx.Clock.Now()
	updates := c.Updates
	if c.Name != nil {
		board := ctx.Snapshot.BoardByID(sprint.BoardID)
		if board == nil {
			return core.Internalf("sprint %s references missing board %s", sprint.ID, sprint.BoardID)
		}
		idx := board.AddSprintName(*c.Name, now)
		updates.NameIndex = domain.Set(idx)
	}
	sprint.Apply(updates, now)
	return nil
}

func (c *UpdateSprint) Description() string { return "Update sprint" }

// ActivateSprint starts a Planning sprint and makes it the board's
// active sprint. The duration falls back to the board's configured
// sprint length, then to DefaultDurationDays.
type ActivateSprint struct {
	SprintID            uuid.UUID
	DurationDays        *int
	DefaultDurationDays int
}

func (c *ActivateSprint) Execute(ctx *Context) error {
	sprint := ctx.Snapshot.SprintByID(c.SprintID)
	if sprint == nil {
		return core.NotFoundf("sprint %s", c.SprintID)
	}
	if !sprint.CanActivate() {
		return core.Validationf("sprint %s cannot be activated from %s", c.SprintID, sprint.Status)
	}
	board := ctx.Snapshot.BoardByID(sprint.BoardID)
	if board == nil {
		return core.Internalf("sprint %s references missing board %s", sprint.ID, sprint.BoardID)
	}
	duration := c.DefaultDurationDays
	if board.SprintDurationDays != nil {
		duration = *board.SprintDurationDays
	}
	if c.DurationDays != nil {
		duration = *c.DurationDays
	}
	if duration <= 0 {
		return core.Validationf("sprint duration must be positive")
	}
	now := ctx.Clock.Now()
	sprint.Activate(duration, now)
	id := sprint.ID
	board.ActiveSprintID = &id
	board.UpdatedAt = now
	return nil
}

func (c *ActivateSprint) Description() string {
	return fmt.Sprintf("Activate sprint %s", c.SprintID)
}

// CompleteSprint finishes an Active sprint and clears the board's
// active sprint pointer when it references this sprint.
type CompleteSprint struct {
	SprintID uuid.UUID
}

func (c *CompleteSprint) Execute(ctx *Context) error {
	sprint := ctx.Snapshot.SprintByID(c.SprintID)
	if sprint == nil {
		return core.NotFoundf("sprint %s", c.SprintID)
	}
	if !sprint.CanComplete() {
		return core.Validationf("sprint %s cannot be completed from %s", c.SprintID, sprint.Status)
	}
	now := ctx.Clock.Now()
	sprint.Complete(now)
	clearActiveSprint(ctx.Snapshot, sprint.BoardID, sprint.ID, now)
	return nil
}

func (c *CompleteSprint) Description() string {
	return fmt.Sprintf("Complete sprint %s", c.SprintID)
}

// CancelSprint cancels a Planning or Active sprint.
type CancelSprint struct {
	SprintID uuid.UUID
}

func (c *CancelSprint) Execute(ctx *Context) error {
	sprint := ctx.Snapshot.SprintByID(c.SprintID)
	if sprint == nil {
		return core.NotFoundf("sprint %s", c.SprintID)
	}
	if !sprint.CanCancel() {
		return core.Validationf("sprint %s cannot be cancelled from %s", c.SprintID, sprint.Status)
	}
	now := ctx.Clock.Now()
	sprint.Cancel(now)
	clearActiveSprint(ctx.Snapshot, sprint.BoardID, sprint.ID, now)
	return nil
}

func (c *CancelSprint) Description() string {
	return fmt.Sprintf("Cancel sprint %s", c.SprintID)
}

// DeleteSprint removes a sprint, unassigning it from every live and
// archived card that references it.
type DeleteSprint struct {
	SprintID uuid.UUID
}

func (c *DeleteSprint) Execute(ctx *Context) error {
	snap := ctx.Snapshot
	sprint := snap.SprintByID(c.SprintID)
	if sprint == nil {
		return core.NotFoundf("sprint %s", c.SprintID)
	}
	now := ctx.Clock.Now()

	for i := range snap.Cards {
		if snap.Cards[i].SprintID != nil && *snap.Cards[i].SprintID == c.SprintID {
			snap.Cards[i].UnassignSprint(now)
		}
	}
	for i := range snap.ArchivedCards {
		card := &snap.ArchivedCards[i].Card
		if card.SprintID != nil && *card.SprintID == c.SprintID {
			card.UnassignSprint(now)
		}
	}
	clearActiveSprint(snap, sprint.BoardID, c.SprintID, now)

	kept := snap.Sprints[:0]
	for _, sp := range snap.Sprints {
		if sp.ID != c.SprintID {
			kept = append(kept, sp)
		}
	}
	snap.Sprints = kept
	return nil
}

func (c *DeleteSprint) Description() string {
	return fmt.Sprintf("Delete sprint %s", c.SprintID)
}

func clearActiveSprint(snap *domain.Snapshot, boardID, sprintID uuid.UUID, now time.Time) {
	board := snap.BoardByID(boardID)
	if board == nil {
		return
	}
	if board.ActiveSprintID != nil && *board.ActiveSprintID == sprintID {
		board.ActiveSprintID = nil
		board.UpdatedAt = now
	}
}
