package draft

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlpad/pkg/observability"
)

// saveTimeout bounds a background save started by the debounce timer.
const saveTimeout = 10 * time.Second

// Autosaver debounces edits to one draft. Each Touch restarts the delay;
// only the latest text is written once edits pause. Saves never overlap and
// are applied in edit order.
type Autosaver struct {
	store   Store
	id      string
	delay   time.Duration
	logger  *log.Logger
	backend string

	saveMu sync.Mutex // serializes writes to the store

	mu      sync.Mutex
	timer   *time.Timer
	pending *string
	gen     uint64
	stopped bool
	lastErr error
	onSave  func(*Draft, error)
}

// NewAutosaver creates an Autosaver for the draft id. A non-positive delay
// selects AutosaveDelay. logger may be nil.
func NewAutosaver(store Store, id string, delay time.Duration, logger *log.Logger) *Autosaver {
	if delay <= 0 {
		delay = AutosaveDelay
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Autosaver{
		store:   store,
		id:      id,
		delay:   delay,
		logger:  logger,
		backend: BackendName(store),
	}
}

// OnSave registers fn to be called after every save attempt, from the
// goroutine that performed it.
func (a *Autosaver) OnSave(fn func(*Draft, error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onSave = fn
}

// Touch records new text and restarts the debounce delay.
func (a *Autosaver) Touch(code string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.pending = &code
	a.gen++
	gen := a.gen
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

// Pending reports whether there is text that has not been saved yet.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Err returns the error of the most recent save, if any.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Flush saves pending text immediately. It is a no-op when nothing is
// pending.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	code, ok := a.take(0)
	if !ok {
		return nil
	}
	return a.save(ctx, code)
}

// Discard drops pending text without saving. Later edits are saved as
// usual. A save already in flight is not waited for; use Clear to remove
// the stored draft.
func (a *Autosaver) Discard() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.discardLocked()
}

// Clear drops pending text, waits for a save in flight and deletes the
// stored draft. No save started before Clear can land after it.
func (a *Autosaver) Clear(ctx context.Context) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	a.Discard()
	if err := a.store.Delete(ctx, a.id); err != nil {
		return fmt.Errorf("clear %s: %w", a.id, err)
	}
	return nil
}

func (a *Autosaver) discardLocked() {
	a.pending = nil
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Stop cancels any pending save. Text touched after Stop is ignored.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Autosaver) fire(gen uint64) {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	code, ok := a.take(gen)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	_ = a.save(ctx, code)
}

// take removes and returns the pending text. A non-zero gen must match the
// latest Touch, so timers superseded by a later edit do nothing.
func (a *Autosaver) take(gen uint64) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped || a.pending == nil {
		return "", false
	}
	if gen != 0 && gen != a.gen {
		return "", false
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	code := *a.pending
	a.pending = nil
	return code, true
}

func (a *Autosaver) save(ctx context.Context, code string) error {
	d := New(a.id, code)
	err := a.store.Save(ctx, d)
	observability.Render().OnDraftSave(ctx, a.backend, len(code), err)
	if err != nil {
		err = fmt.Errorf("autosave %s: %w", a.id, err)
		a.logger.Warn("autosave failed", "draft", a.id, "err", err)
	} else {
		a.logger.Debug("draft saved", "draft", a.id, "bytes", len(code))
	}

	a.mu.Lock()
	a.lastErr = err
	fn := a.onSave
	a.mu.Unlock()
	if fn != nil {
		fn(d, err)
	}
	return err
}

// BackendName returns a short label for a store, used in logs and hooks.
func BackendName(s Store) string {
	switch s.(type) {
	case *MemoryStore:
		return "memory"
	case *FileStore:
		return "file"
	case *RedisStore:
		return "redis"
	case *MongoStore:
		return "mongo"
	default:
		return "custom"
	}
}
