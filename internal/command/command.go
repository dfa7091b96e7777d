// Package command implements the mutation layer. Every change to the
// in-memory snapshot goes through a Command so that CLI, TUI, and
// external drivers produce identical effects and the history manager can
// capture state uniformly around them.
//
// Commands are atomic at the value level: all precondition checks run
// before the first mutation, so a failed command leaves the context
// exactly as it found it. Commands never perform I/O.
package command

import (
	"kanban/internal/core"
	"kanban/internal/domain"
)

// Command is one mutation applied to a snapshot.
type Command interface {
	Execute(ctx *Context) error
	Description() string
}

// Context carries the mutable state commands operate on, plus the clock
// and id source so command effects are deterministic under test.
type Context struct {
	Snapshot *domain.Snapshot
	Clock    core.Clock
	IDs      core.IDGenerator
}

// NewContext wires a context over a snapshot with real time and ids.
func NewContext(snapshot *domain.Snapshot) *Context {
	return &Context{Snapshot: snapshot, Clock: core.RealClock{}, IDs: core.UUIDGenerator{}}
}
