package draft

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/umlpad/pkg/errors"
)

// testStore exercises the Store contract against any backend.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	id := "test-" + NewID()

	got, err := s.Load(ctx, id)
	if err != nil || got != nil {
		t.Fatalf("Load(missing) = %v, %v; want nil, nil", got, err)
	}

	code := "@startuml\nactor \"Ünïcode User\"\n@enduml"
	if err := s.Save(ctx, New(id, code)); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err = s.Load(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("Load = %v, %v", got, err)
	}
	if got.ID != id || got.Code != code {
		t.Errorf("Load = %+v", got)
	}
	if got.SavedAt.IsZero() {
		t.Error("SavedAt not persisted")
	}

	if err := s.Save(ctx, New(id, "replaced")); err != nil {
		t.Fatalf("Save(replace) error: %v", err)
	}
	if got, _ := s.Load(ctx, id); got == nil || got.Code != "replaced" {
		t.Errorf("Load after replace = %+v", got)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := s.Load(ctx, id); got != nil {
		t.Errorf("Load after Delete = %+v", got)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}

	for _, bad := range []string{"", "../etc/passwd", "a/b", ".hidden"} {
		if _, err := s.Load(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidDraftID) {
			t.Errorf("Load(%q) error = %v, want INVALID_DRAFT_ID", bad, err)
		}
		if err := s.Save(ctx, New(bad, "x")); !errors.Is(err, errors.ErrCodeInvalidDraftID) {
			t.Errorf("Save(%q) error = %v, want INVALID_DRAFT_ID", bad, err)
		}
	}
	if err := s.Save(ctx, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(nil) error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testStore(t, s)
}

func TestFileStore_AtomicWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Save(ctx, New(DefaultID, strings.Repeat("x", i))); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != DefaultID+".json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want only %s.json", names, DefaultID)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(context.Background(), "broken"); err == nil {
		t.Error("Load of corrupt draft should fail")
	}
}

func TestFileStore_List(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()
	for _, id := range []string{"b", "a", DefaultID} {
		if err := s.Save(ctx, New(id, "x")); err != nil {
			t.Fatal(err)
		}
	}
	ids, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", DefaultID}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("List() = %v, want %v", ids, want)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "umlpad", "drafts") {
		t.Errorf("DefaultDir() = %q", dir)
	}
}

func TestLoadOrDefault(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	code, err := LoadOrDefault(ctx, s, DefaultID, "default")
	if err != nil || code != "default" {
		t.Errorf("LoadOrDefault(empty) = %q, %v", code, err)
	}

	_ = s.Save(ctx, New(DefaultID, "saved"))
	code, err = LoadOrDefault(ctx, s, DefaultID, "default")
	if err != nil || code != "saved" {
		t.Errorf("LoadOrDefault = %q, %v", code, err)
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Error("NewID returned duplicates")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("NewID() = %q is not a UUID: %v", a, err)
	}
	if err := errors.ValidateDraftID(a); err != nil {
		t.Errorf("NewID() = %q rejected as draft ID: %v", a, err)
	}
}

func TestNew(t *testing.T) {
	before := time.Now().UTC()
	d := New("x", "code")
	if d.SavedAt.Before(before.Add(-time.Second)) || d.SavedAt.Location() != time.UTC {
		t.Errorf("SavedAt = %v", d.SavedAt)
	}
}
