// Package history keeps bounded undo and redo stacks of snapshot
// clones. Captures are taken before a command mutates state, so undo
// restores the pre-command snapshot and redo the pre-undo one.
package history

import (
	"kanban/internal/domain"
)

// DefaultLimit caps each stack when no explicit limit is configured.
const DefaultLimit = 100

// Manager owns the undo and redo stacks. It is not safe for concurrent
// use; the service serialises access to it.
//
// Push methods take ownership of the snapshot they are given; callers
// clone first when they keep using the value.
type Manager struct {
	limit      int
	undo       []*domain.Snapshot
	redo       []*domain.Snapshot
	suppressed bool
}

// NewManager returns a manager bounded to limit entries per stack.
// A non-positive limit falls back to DefaultLimit.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Record stores the pre-command snapshot and clears the redo stack,
// since the timeline has forked. It is a no-op while captures are
// suppressed, which is how undo and redo themselves avoid polluting
// the history.
func (m *Manager) Record(pre *domain.Snapshot) {
	if m.suppressed {
		return
	}
	m.undo = push(m.undo, pre, m.limit)
	m.redo = nil
}

// PopUndo removes and returns the most recent undo entry, or nil.
func (m *Manager) PopUndo() *domain.Snapshot {
	var s *domain.Snapshot
	m.undo, s = pop(m.undo)
	return s
}

// PopRedo removes and returns the most recent redo entry, or nil.
func (m *Manager) PopRedo() *domain.Snapshot {
	var s *domain.Snapshot
	m.redo, s = pop(m.redo)
	return s
}

// PushUndo records a snapshot on the undo stack without touching redo.
// Used by redo to make its effect undoable.
func (m *Manager) PushUndo(snapshot *domain.Snapshot) {
	m.undo = push(m.undo, snapshot, m.limit)
}

// PushRedo records a snapshot on the redo stack. Used by undo.
func (m *Manager) PushRedo(snapshot *domain.Snapshot) {
	m.redo = push(m.redo, snapshot, m.limit)
}

// CanUndo reports whether an undo entry is available.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether a redo entry is available.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoDepth returns the number of undo entries held.
func (m *Manager) UndoDepth() int { return len(m.undo) }

// RedoDepth returns the number of redo entries held.
func (m *Manager) RedoDepth() int { return len(m.redo) }

// Clear drops both stacks. Called after an external change replaces the
// in-memory snapshot, since the old entries no longer describe the
// lineage of the current state.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

// Suppress stops Record from capturing until Unsuppress.
func (m *Manager) Suppress() { m.suppressed = true }

// Unsuppress re-enables captures.
func (m *Manager) Unsuppress() { m.suppressed = false }

// Suppressed reports whether captures are currently disabled.
func (m *Manager) Suppressed() bool { return m.suppressed }

// push appends an entry, dropping the oldest past the limit.
func push(stack []*domain.Snapshot, s *domain.Snapshot, limit int) []*domain.Snapshot {
	stack = append(stack, s)
	if len(stack) > limit {
		n := copy(stack, stack[len(stack)-limit:])
		for i := n; i < len(stack); i++ {
			stack[i] = nil
		}
		stack = stack[:n]
	}
	return stack
}

// pop removes the top entry, returning nil when the stack is empty.
func pop(stack []*domain.Snapshot) ([]*domain.Snapshot, *domain.Snapshot) {
	if len(stack) == 0 {
		return stack, nil
	}
	s := stack[len(stack)-1]
	stack[len(stack)-1] = nil
	return stack[:len(stack)-1], s
}
