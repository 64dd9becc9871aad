// Package viewer manages the single place a rendered diagram is shown.
//
// A [Viewer] owns at most one [Surface]. The first [Viewer.Show] creates it;
// later calls reuse it while it is open and create a fresh one after the
// user has closed it. [Viewer.Close] drops the surface so the next Show
// starts over.
package viewer

import (
	"context"
	"fmt"
	"sync"
)

// Surface displays diagram URLs.
type Surface interface {
	// Show displays the diagram at url, replacing what was shown before.
	Show(ctx context.Context, url string) error

	// Closed reports whether the surface is no longer usable.
	Closed() bool

	// Close releases the surface.
	Close() error
}

// Factory creates a new surface.
type Factory func(ctx context.Context) (Surface, error)

// Viewer holds the current surface. It is safe for concurrent use.
type Viewer struct {
	mu      sync.Mutex
	factory Factory
	current Surface
	opened  int
}

// New creates a Viewer that builds surfaces with factory.
func New(factory Factory) *Viewer {
	return &Viewer{factory: factory}
}

// Show displays url on the current surface, creating one if there is none
// or the previous one was closed.
func (v *Viewer) Show(ctx context.Context, url string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current == nil || v.current.Closed() {
		s, err := v.factory(ctx)
		if err != nil {
			return fmt.Errorf("open viewer: %w", err)
		}
		v.current = s
		v.opened++
	}
	return v.current.Show(ctx, url)
}

// Active reports whether an open surface exists.
func (v *Viewer) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current != nil && !v.current.Closed()
}

// Opened returns how many surfaces have been created.
func (v *Viewer) Opened() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opened
}

// Close closes and forgets the current surface.
func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current == nil {
		return nil
	}
	err := v.current.Close()
	v.current = nil
	return err
}
