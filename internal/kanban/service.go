// Package kanban is the orchestration layer: it owns the in-memory
// snapshot and coordinates commands, history, persistence, and the
// file watcher behind one mutex.
package kanban

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kanban/internal/command"
	"kanban/internal/config"
	"kanban/internal/core"
	"kanban/internal/domain"
	"kanban/internal/history"
	"kanban/internal/store"
	"kanban/internal/watch"
)

// Service coordinates every operation on the workspace. All exported
// methods are safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	snapshot *domain.Snapshot
	store    *store.FileStore
	history  *history.Manager
	resolver store.ConflictResolver
	watcher  *watch.Watcher
	logger   *slog.Logger
	clock    core.Clock
	idgen    core.IDGenerator
	cfg      *config.Config

	dirty           bool
	persistDisabled bool
}

// NewService creates a service with the provided dependencies. The
// watcher may be nil when change detection is not wanted.
func NewService(st *store.FileStore, hist *history.Manager, resolver store.ConflictResolver, watcher *watch.Watcher, logger *slog.Logger, clock core.Clock, idgen core.IDGenerator, cfg *config.Config) *Service {
	return &Service{
		snapshot: domain.NewSnapshot(),
		store:    st,
		history:  hist,
		resolver: resolver,
		watcher:  watcher,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		cfg:      cfg,
	}
}

// Load reads the snapshot from disk. When the file cannot be read or
// parsed the service keeps an empty snapshot and disables persistence,
// so a later save cannot clobber a file we never understood.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.store.Load()
	if err != nil {
		s.persistDisabled = true
		s.logger.Error("load failed, persistence disabled", "path", s.store.Path(), "error", err)
		return err
	}
	s.snapshot = snapshot
	s.dirty = false
	s.history.Clear()
	s.logger.Info("snapshot loaded",
		"path", s.store.Path(),
		"boards", len(snapshot.Boards),
		"cards", len(snapshot.Cards))
	return nil
}

// PersistenceDisabled reports whether saves are being skipped because
// the initial load failed.
func (s *Service) PersistenceDisabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistDisabled
}

// Dirty reports whether in-memory state has diverged from disk.
func (s *Service) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// apply runs one command under the lock: capture history, execute,
// persist. A failed command leaves snapshot and history untouched.
func (s *Service) apply(cmd command.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pre *domain.Snapshot
	if !s.history.Suppressed() {
		pre = s.snapshot.Clone()
	}
	ctx := &command.Context{Snapshot: s.snapshot, Clock: s.clock, IDs: s.idgen}
	if err := cmd.Execute(ctx); err != nil {
		return err
	}
	if pre != nil {
		s.history.Record(pre)
	}
	s.dirty = true
	s.logger.Info("command applied", "command", cmd.Description())
	// Deleting the last board legitimately empties the workspace; the
	// empty-file guard only protects against saves nobody asked for.
	return s.saveLocked(store.SaveOptions{AllowEmpty: true})
}

// Undo restores the snapshot captured before the last command.
func (s *Service) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.history.CanUndo() {
		return core.Validationf("nothing to undo")
	}
	prev := s.history.PopUndo()
	s.history.PushRedo(s.snapshot)
	s.snapshot = prev
	s.dirty = true
	s.logger.Info("undo applied", "remaining", s.history.UndoDepth())
	return s.saveLocked(store.SaveOptions{AllowEmpty: true})
}

// Redo reapplies the last undone change.
func (s *Service) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.history.CanRedo() {
		return core.Validationf("nothing to redo")
	}
	next := s.history.PopRedo()
	s.history.PushUndo(s.snapshot)
	s.snapshot = next
	s.dirty = true
	s.logger.Info("redo applied", "remaining", s.history.RedoDepth())
	return s.saveLocked(store.SaveOptions{AllowEmpty: true})
}

// CanUndo reports whether an undo entry is available.
func (s *Service) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo entry is available.
func (s *Service) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Flush persists the current snapshot if it is dirty.
func (s *Service) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.saveLocked(store.SaveOptions{AllowEmpty: true})
}

// saveLocked persists the snapshot, resolving conflicts with other
// writers. Caller holds the mutex.
func (s *Service) saveLocked(opts store.SaveOptions) error {
	if s.persistDisabled {
		s.logger.Warn("save skipped, persistence disabled", "path", s.store.Path())
		return nil
	}

	err := s.store.Save(s.snapshot, opts)
	if err == nil {
		s.afterSaveLocked()
		return nil
	}
	if !core.IsKind(err, core.KindConflict) {
		return err
	}
	return s.resolveConflictLocked(opts)
}

// resolveConflictLocked consults the resolver and either adopts the
// external snapshot or forces our own through with retries.
func (s *Service) resolveConflictLocked(opts store.SaveOptions) error {
	external, externalMeta, err := s.store.LoadExternal()
	if err != nil {
		return err
	}
	res := s.resolver.Resolve(s.snapshot, external, s.store.Metadata(), externalMeta)
	if res == store.KeepExternal {
		s.logger.Warn("conflict resolved in favour of external change",
			"path", s.store.Path(), "external_instance", externalMeta.InstanceID)
		snapshot, err := s.store.Load()
		if err != nil {
			return err
		}
		s.snapshot = snapshot
		s.dirty = false
		s.history.Clear()
		return nil
	}

	s.logger.Warn("conflict resolved in favour of local state", "path", s.store.Path())
	forced := opts
	forced.Force = true
	delay := time.Duration(s.cfg.Save.RetryBaseDelayMs) * time.Millisecond
	var saveErr error
	for attempt := 0; attempt < s.cfg.Save.RetryAttempts; attempt++ {
		if saveErr = s.store.Save(s.snapshot, forced); saveErr == nil {
			s.afterSaveLocked()
			return nil
		}
		if !core.IsRetryable(saveErr) {
			return saveErr
		}
		time.Sleep(delay)
		delay *= 2
		if delay > time.Second {
			delay = time.Second
		}
	}
	return saveErr
}

func (s *Service) afterSaveLocked() {
	s.dirty = false
	if s.watcher != nil {
		s.watcher.RecordOwnWrite(s.store.LastFingerprint())
	}
}

// Watch starts the file watcher and reloads the snapshot whenever
// another instance rewrites the data file. It returns once the watch
// is established; OnChange is invoked after each adopted reload and
// may be nil.
func (s *Service) Watch(ctx context.Context, onChange func()) error {
	if s.watcher == nil {
		return core.Internalf("service was built without a watcher")
	}
	events := s.watcher.Subscribe()
	if err := s.watcher.Start(ctx); err != nil {
		return core.IOErr("starting file watcher", err)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				if err := s.HandleExternalChange(); err != nil {
					s.logger.Error("external change reload failed", "error", err)
					continue
				}
				if onChange != nil {
					onChange()
				}
			}
		}
	}()
	return nil
}

// HandleExternalChange reloads the snapshot after another instance
// modified the file. Unsaved local changes are put through the
// conflict resolver first.
func (s *Service) HandleExternalChange() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.store.ExternallyModified()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if s.dirty {
		external, externalMeta, err := s.store.LoadExternal()
		if err != nil {
			return err
		}
		if s.resolver.Resolve(s.snapshot, external, s.store.Metadata(), externalMeta) == store.KeepLocal {
			s.logger.Warn("external change discarded in favour of local unsaved state")
			return s.saveLocked(store.SaveOptions{AllowEmpty: true, Force: true})
		}
	}

	snapshot, err := s.store.Load()
	if err != nil {
		return err
	}
	s.snapshot = snapshot
	s.dirty = false
	s.history.Clear()
	s.logger.Info("external change adopted", "path", s.store.Path())
	return nil
}

// Close stops the watcher and flushes pending changes.
func (s *Service) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return s.Flush()
}
