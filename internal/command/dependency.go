package command

import (
	"fmt"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// AddDependency adds a typed edge between two existing cards. Cycle and
// self-reference checks live in the graph itself.
type AddDependency struct {
	SourceID uuid.UUID
	TargetID uuid.UUID
	EdgeType domain.EdgeType
}

func (c *AddDependency) Execute(ctx *Context) error {
	if err := requireCards(ctx, c.SourceID, c.TargetID); err != nil {
		return err
	}
	return ctx.Snapshot.Graph.Cards.AddEdge(c.SourceID, c.TargetID, c.EdgeType, ctx.Clock.Now())
}

func (c *AddDependency) Description() string {
	return fmt.Sprintf("Add %s edge %s -> %s", c.EdgeType, c.SourceID, c.TargetID)
}

// RemoveDependency permanently removes the edges between two cards.
type RemoveDependency struct {
	SourceID uuid.UUID
	TargetID uuid.UUID
}

func (c *RemoveDependency) Execute(ctx *Context) error {
	if !ctx.Snapshot.Graph.Cards.RemoveEdge(c.SourceID, c.TargetID) {
		return core.NotFoundf("edge %s -> %s", c.SourceID, c.TargetID)
	}
	return nil
}

func (c *RemoveDependency) Description() string {
	return fmt.Sprintf("Remove edge %s -> %s", c.SourceID, c.TargetID)
}

// ArchiveDependency soft-deletes the edges between two cards so
// traversals skip them.
type ArchiveDependency struct {
	SourceID uuid.UUID
	TargetID uuid.UUID
}

func (c *ArchiveDependency) Execute(ctx *Context) error {
	if !ctx.Snapshot.Graph.Cards.ArchiveEdge(c.SourceID, c.TargetID, ctx.Clock.Now()) {
		return core.NotFoundf("active edge %s -> %s", c.SourceID, c.TargetID)
	}
	return nil
}

func (c *ArchiveDependency) Description() string {
	return fmt.Sprintf("Archive edge %s -> %s", c.SourceID, c.TargetID)
}

// UnarchiveDependency restores soft-deleted edges between two cards.
type UnarchiveDependency struct {
	SourceID uuid.UUID
	TargetID uuid.UUID
}

func (c *UnarchiveDependency) Execute(ctx *Context) error {
	if !ctx.Snapshot.Graph.Cards.UnarchiveEdge(c.SourceID, c.TargetID) {
		return core.NotFoundf("archived edge %s -> %s", c.SourceID, c.TargetID)
	}
	return nil
}

func (c *UnarchiveDependency) Description() string {
	return fmt.Sprintf("Unarchive edge %s -> %s", c.SourceID, c.TargetID)
}

func requireCards(ctx *Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		if ctx.Snapshot.CardByID(id) == nil && ctx.Snapshot.ArchivedCardByID(id) == nil {
			return core.NotFoundf("card %s", id)
		}
	}
	return nil
}
