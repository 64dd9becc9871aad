package draft

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingStore records saves.
type countingStore struct {
	*MemoryStore
	saves atomic.Int32
	fail  error
}

func (s *countingStore) Save(ctx context.Context, d *Draft) error {
	s.saves.Add(1)
	if s.fail != nil {
		return s.fail
	}
	return s.MemoryStore.Save(ctx, d)
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: NewMemoryStore()}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestAutosaver_Coalesces(t *testing.T) {
	s := newCountingStore()
	a := NewAutosaver(s, DefaultID, 30*time.Millisecond, nil)
	defer a.Stop()

	for _, code := range []string{"a", "ab", "abc", "abcd"} {
		a.Touch(code)
		time.Sleep(5 * time.Millisecond)
	}
	if !a.Pending() {
		t.Error("Pending() = false right after Touch")
	}

	waitFor(t, func() bool { return s.saves.Load() > 0 })
	time.Sleep(60 * time.Millisecond)

	if n := s.saves.Load(); n != 1 {
		t.Errorf("saves = %d, want 1", n)
	}
	d, _ := s.Load(context.Background(), DefaultID)
	if d == nil || d.Code != "abcd" {
		t.Errorf("saved draft = %+v, want abcd", d)
	}
	if a.Pending() {
		t.Error("Pending() = true after save")
	}
}

func TestAutosaver_Flush(t *testing.T) {
	s := newCountingStore()
	a := NewAutosaver(s, DefaultID, time.Hour, nil)
	defer a.Stop()

	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("Flush(nothing pending) error: %v", err)
	}
	if s.saves.Load() != 0 {
		t.Error("Flush saved without pending text")
	}

	a.Touch("text")
	if err := a.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	d, _ := s.Load(context.Background(), DefaultID)
	if d == nil || d.Code != "text" {
		t.Errorf("saved draft = %+v", d)
	}
	if err := a.Flush(context.Background()); err != nil || s.saves.Load() != 1 {
		t.Errorf("second Flush: err=%v saves=%d", err, s.saves.Load())
	}
}

func TestAutosaver_Stop(t *testing.T) {
	s := newCountingStore()
	a := NewAutosaver(s, DefaultID, 20*time.Millisecond, nil)

	a.Touch("discarded")
	a.Stop()
	a.Touch("ignored")
	time.Sleep(60 * time.Millisecond)

	if n := s.saves.Load(); n != 0 {
		t.Errorf("saves after Stop = %d", n)
	}
	if a.Pending() {
		t.Error("Pending() after Stop")
	}
}

func TestAutosaver_Error(t *testing.T) {
	s := newCountingStore()
	s.fail = stderrors.New("disk full")
	a := NewAutosaver(s, DefaultID, time.Hour, nil)
	defer a.Stop()

	var mu sync.Mutex
	var gotErr error
	a.OnSave(func(_ *Draft, err error) {
		mu.Lock()
		gotErr = err
		mu.Unlock()
	})

	a.Touch("x")
	err := a.Flush(context.Background())
	if !stderrors.Is(err, s.fail) {
		t.Fatalf("Flush error = %v", err)
	}
	if !stderrors.Is(a.Err(), s.fail) {
		t.Errorf("Err() = %v", a.Err())
	}
	mu.Lock()
	defer mu.Unlock()
	if !stderrors.Is(gotErr, s.fail) {
		t.Errorf("OnSave err = %v", gotErr)
	}
}

func TestAutosaver_DefaultDelay(t *testing.T) {
	a := NewAutosaver(NewMemoryStore(), DefaultID, 0, nil)
	if a.delay != AutosaveDelay {
		t.Errorf("delay = %v, want %v", a.delay, AutosaveDelay)
	}
}

func TestBackendName(t *testing.T) {
	fs, _ := NewFileStore(t.TempDir())
	tests := []struct {
		store Store
		want  string
	}{
		{NewMemoryStore(), "memory"},
		{fs, "file"},
		{&RedisStore{}, "redis"},
		{&MongoStore{}, "mongo"},
		{newCountingStore(), "custom"},
	}
	for _, tt := range tests {
		if got := BackendName(tt.store); got != tt.want {
			t.Errorf("BackendName(%T) = %q, want %q", tt.store, got, tt.want)
		}
	}
}

func TestAutosaver_Discard(t *testing.T) {
	s := newCountingStore()
	a := NewAutosaver(s, DefaultID, 20*time.Millisecond, nil)
	defer a.Stop()

	a.Touch("dropped")
	a.Discard()
	time.Sleep(50 * time.Millisecond)
	if n := s.saves.Load(); n != 0 {
		t.Fatalf("saves after Discard = %d", n)
	}

	a.Touch("kept")
	waitFor(t, func() bool { return s.saves.Load() == 1 })
	d, _ := s.Load(context.Background(), DefaultID)
	if d == nil || d.Code != "kept" {
		t.Errorf("saved draft = %+v", d)
	}
}

// slowStore delays every Save and signals when one has started.
type slowStore struct {
	*MemoryStore
	delay   time.Duration
	started chan struct{}
}

func (s *slowStore) Save(ctx context.Context, d *Draft) error {
	select {
	case s.started <- struct{}{}:
	default:
	}
	time.Sleep(s.delay)
	return s.MemoryStore.Save(ctx, d)
}

func TestAutosaver_ClearWaitsForSaveInFlight(t *testing.T) {
	s := &slowStore{MemoryStore: NewMemoryStore(), delay: 100 * time.Millisecond, started: make(chan struct{}, 1)}
	a := NewAutosaver(s, DefaultID, 10*time.Millisecond, nil)
	defer a.Stop()

	a.Touch("old text")
	select {
	case <-s.started:
	case <-time.After(2 * time.Second):
		t.Fatal("autosave did not start")
	}

	ctx := context.Background()
	if err := a.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	if d, _ := s.Load(ctx, DefaultID); d != nil {
		t.Errorf("draft present after Clear: %q", d.Code)
	}
	if a.Pending() {
		t.Error("Pending() = true after Clear")
	}
}

func TestAutosaver_ClearThenEdit(t *testing.T) {
	s := newCountingStore()
	a := NewAutosaver(s, DefaultID, 20*time.Millisecond, nil)
	defer a.Stop()
	ctx := context.Background()

	a.Touch("before")
	if err := a.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	a.Touch("after")
	waitFor(t, func() bool { return s.saves.Load() == 1 })

	d, _ := s.Load(ctx, DefaultID)
	if d == nil || d.Code != "after" {
		t.Errorf("saved draft = %+v, want code %q", d, "after")
	}
}
