// Package watch observes the data file for writes made by other
// instances. Events are debounced, filtered against our own saves, and
// broadcast to subscribers.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"kanban/internal/store"
)

// DefaultDebounce coalesces the burst of events an atomic rename
// produces into one notification.
const DefaultDebounce = 250 * time.Millisecond

// ownWriteRingSize bounds how many of our recent save fingerprints are
// kept for filtering.
const ownWriteRingSize = 8

// Event signals that the data file changed on disk and the change did
// not come from this process.
type Event struct {
	Path string
	At   time.Time
}

// Watcher monitors one file via its parent directory, since editors and
// atomic writers replace the file rather than write through it.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	subs      []chan Event
	ownWrites []store.Fingerprint
	paused    bool
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a watcher for path. A non-positive debounce falls back to
// DefaultDebounce.
func New(path string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: path, debounce: debounce, logger: logger}
}

// Subscribe registers a channel receiving change events. The channel is
// buffered; when a subscriber falls behind the oldest pending event is
// dropped rather than blocking the watch loop.
func (w *Watcher) Subscribe() <-chan Event {
	ch := make(chan Event, 4)
	w.mu.Lock()
	w.subs = append(w.subs, ch)
	w.mu.Unlock()
	return ch
}

// RecordOwnWrite remembers the fingerprint of a save made by this
// process so the resulting filesystem event is not reported back.
func (w *Watcher) RecordOwnWrite(fp store.Fingerprint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ownWrites = append(w.ownWrites, fp)
	if len(w.ownWrites) > ownWriteRingSize {
		w.ownWrites = w.ownWrites[len(w.ownWrites)-ownWriteRingSize:]
	}
}

// Pause stops event delivery without tearing the watch down. Used while
// the service itself is rewriting the file.
func (w *Watcher) Pause() {
	w.mu.Lock()
	w.paused = true
	w.mu.Unlock()
}

// Resume re-enables event delivery.
func (w *Watcher) Resume() {
	w.mu.Lock()
	w.paused = false
	w.mu.Unlock()
}

// IsWatching reports whether the watch loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Start begins watching. It returns once the underlying watch is
// established; events flow until the context is cancelled or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.mu.Lock()
	w.running = true
	w.cancel = cancel
	w.done = done
	w.mu.Unlock()

	go w.loop(ctx, fsw, done)
	return nil
}

// Stop tears the watch down and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer func() {
		fsw.Close()
		w.mu.Lock()
		w.running = false
		w.cancel = nil
		w.mu.Unlock()
		close(done)
	}()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.fire()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "path", w.path, "error", err)
		}
	}
}

// fire checks the settled file against our own-write ring and notifies
// subscribers if the change came from elsewhere.
func (w *Watcher) fire() {
	info, err := os.Stat(w.path)
	if err != nil {
		// File removed or mid-replace; the next event will retry.
		return
	}
	fp := store.FingerprintOf(info)

	w.mu.Lock()
	if w.paused {
		w.mu.Unlock()
		return
	}
	for i, own := range w.ownWrites {
		if own.Equal(fp) {
			w.ownWrites = append(w.ownWrites[:i], w.ownWrites[i+1:]...)
			w.mu.Unlock()
			return
		}
	}
	subs := make([]chan Event, len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	ev := Event{Path: w.path, At: time.Now()}
	w.logger.Info("external change detected", "path", w.path)
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Drop the oldest pending event to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
