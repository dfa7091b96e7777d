package store

import "kanban/internal/domain"

// Resolution says which side of a conflict wins.
type Resolution int

const (
	// KeepLocal keeps the in-memory snapshot and overwrites the file.
	KeepLocal Resolution = iota
	// KeepExternal adopts the on-disk snapshot and discards local state.
	KeepExternal
)

// ConflictResolver decides what to do when a save finds the file was
// modified by another instance since our last read.
type ConflictResolver interface {
	Resolve(local, external *domain.Snapshot, localMeta, externalMeta Metadata) Resolution
}

// LastWriteWins keeps whichever side was saved most recently. On a tie
// the local snapshot wins, so a fresh instance never silently drops its
// own work.
type LastWriteWins struct{}

func (LastWriteWins) Resolve(local, external *domain.Snapshot, localMeta, externalMeta Metadata) Resolution {
	if externalMeta.SavedAt.After(localMeta.SavedAt) {
		return KeepExternal
	}
	return KeepLocal
}
