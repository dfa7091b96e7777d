// Package store persists snapshots as a single human-readable JSON file.
// Writes go through a temp file and rename so the document on disk is
// always complete, and every load and save records a fingerprint of the
// file so concurrent writers can be detected.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// SaveOptions tunes a single save.
type SaveOptions struct {
	// AllowEmpty permits writing an empty snapshot over a file that holds
	// data. Without it such a save is rejected, since an empty in-memory
	// state usually means a failed load rather than intent.
	AllowEmpty bool
	// Force skips the external-modification check. Used after a conflict
	// has been resolved in favour of local state.
	Force bool
}

// FileStore reads and writes the snapshot file. Methods are safe for
// concurrent use.
type FileStore struct {
	mu         sync.Mutex
	path       string
	instanceID uuid.UUID
	clock      core.Clock

	lastFP   Fingerprint
	lastMeta Metadata
}

// NewFileStore creates a store over path with a fresh instance id.
func NewFileStore(path string, clock core.Clock) *FileStore {
	return &FileStore{path: path, instanceID: uuid.New(), clock: clock}
}

// Path returns the data file path.
func (s *FileStore) Path() string { return s.path }

// InstanceID identifies this process in envelope metadata.
func (s *FileStore) InstanceID() uuid.UUID { return s.instanceID }

// Metadata returns the envelope metadata from the last load or save.
func (s *FileStore) Metadata() Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMeta
}

// LastFingerprint returns the file fingerprint recorded by the last
// load or save. The watcher uses it to recognise our own writes.
func (s *FileStore) LastFingerprint() Fingerprint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFP
}

// Load reads the snapshot from disk, migrating legacy v1 files first.
// A missing file yields an empty snapshot.
func (s *FileStore) Load() (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleanStaleTemps(s.path)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.lastFP = Fingerprint{}
			s.lastMeta = Metadata{}
			return domain.NewSnapshot(), nil
		}
		return nil, core.IOErr(fmt.Sprintf("reading %s", s.path), err)
	}

	version, err := DetectVersion(raw)
	if err != nil {
		return nil, err
	}
	if version < FormatVersion {
		if err := MigrateV1ToV2(s.path, s.instanceID, s.clock.Now()); err != nil {
			return nil, err
		}
		raw, err = os.ReadFile(s.path)
		if err != nil {
			return nil, core.IOErr(fmt.Sprintf("re-reading %s after migration", s.path), err)
		}
	} else if version > FormatVersion {
		return nil, core.SerializationErr("reading data file",
			fmt.Errorf("format version %d is newer than supported version %d", version, FormatVersion))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, core.SerializationErr("parsing envelope", err)
	}
	snapshot := domain.NewSnapshot()
	if err := json.Unmarshal(env.Data, snapshot); err != nil {
		return nil, core.SerializationErr("parsing snapshot", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, core.IOErr(fmt.Sprintf("stating %s", s.path), err)
	}
	s.lastFP = FingerprintOf(info)
	s.lastMeta = env.Metadata
	return snapshot, nil
}

// Save writes the snapshot atomically. Unless opts.Force is set, a file
// that changed since our last load or save fails with a conflict error
// and the file is left untouched.
func (s *FileStore) Save(snapshot *domain.Snapshot, opts SaveOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, err := os.Stat(s.path); err == nil {
		if snapshot.IsEmpty() && info.Size() > 0 && !opts.AllowEmpty {
			return core.Validationf("refusing to overwrite %s with an empty snapshot", s.path)
		}
		if !opts.Force && !s.lastFP.IsZero() && !s.lastFP.Equal(FingerprintOf(info)) {
			return core.Conflictf("data file %s was modified by another instance", s.path)
		}
	} else if !os.IsNotExist(err) {
		return core.IOErr(fmt.Sprintf("stating %s", s.path), err)
	}

	meta := Metadata{
		FormatVersion: FormatVersion,
		InstanceID:    s.instanceID,
		SavedAt:       s.clock.Now(),
	}
	env := envelope{Version: FormatVersion, Metadata: meta}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return core.SerializationErr("encoding snapshot", err)
	}
	env.Data = data
	out, err := json.MarshalIndent(&env, "", "  ")
	if err != nil {
		return core.SerializationErr("encoding envelope", err)
	}
	out = append(out, '\n')

	if err := writeAtomic(s.path, out); err != nil {
		return err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return core.IOErr(fmt.Sprintf("stating %s after save", s.path), err)
	}
	s.lastFP = FingerprintOf(info)
	s.lastMeta = meta
	return nil
}

// LoadExternal reads the current file without updating the store's
// tracked fingerprint or metadata. Used during conflict resolution to
// inspect what the other writer produced.
func (s *FileStore) LoadExternal() (*domain.Snapshot, Metadata, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, Metadata{}, core.IOErr(fmt.Sprintf("reading %s", s.path), err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, Metadata{}, core.SerializationErr("parsing envelope", err)
	}
	snapshot := domain.NewSnapshot()
	if err := json.Unmarshal(env.Data, snapshot); err != nil {
		return nil, Metadata{}, core.SerializationErr("parsing snapshot", err)
	}
	return snapshot, env.Metadata, nil
}

// ExternallyModified reports whether the file on disk no longer matches
// the fingerprint from our last load or save.
func (s *FileStore) ExternallyModified() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return !s.lastFP.IsZero(), nil
		}
		return false, core.IOErr(fmt.Sprintf("stating %s", s.path), err)
	}
	if s.lastFP.IsZero() {
		return true, nil
	}
	return !s.lastFP.Equal(FingerprintOf(info)), nil
}
