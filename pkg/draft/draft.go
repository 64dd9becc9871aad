// Package draft persists the diagram source being edited.
//
// A [Draft] is the raw text of one document, never its encoded form. Drafts
// are kept in a [Store]; the implementations cover different deployments:
//   - [MemoryStore]: process-local, for tests and ephemeral servers
//   - [FileStore]: one JSON file per draft, for the CLI and single hosts
//   - [RedisStore]: shared storage with an optional TTL
//   - [MongoStore]: durable storage for multi-instance deployments
//
// # Autosave
//
// The editors do not save on every keystroke. An [Autosaver] coalesces edits
// and writes the latest text once no edit has arrived for [AutosaveDelay]:
//
//	as := draft.NewAutosaver(store, draft.DefaultID, draft.AutosaveDelay, logger)
//	defer as.Stop()
//	as.Touch(code)          // after every edit
//	err := as.Flush(ctx)    // before exit
//
// # Identifiers
//
// [DefaultID] is the single-document key used by the editors. Servers that
// host several documents issue identifiers with [NewID].
package draft

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/umlpad/pkg/errors"
)

const (
	// DefaultID is the key of the single draft kept by the editors.
	DefaultID = "plantuml-code"

	// AutosaveDelay is how long the editors wait after the last edit
	// before saving.
	AutosaveDelay = time.Second
)

// Draft is the saved text of one document.
type Draft struct {
	ID      string    `json:"id" bson:"_id"`
	Code    string    `json:"code" bson:"code"`
	SavedAt time.Time `json:"savedAt" bson:"savedAt"`
}

// New creates a draft stamped with the current time.
func New(id, code string) *Draft {
	return &Draft{ID: id, Code: code, SavedAt: time.Now().UTC()}
}

// NewID returns a fresh random draft identifier.
func NewID() string {
	return uuid.NewString()
}

// Store is the interface for draft storage backends.
type Store interface {
	// Load retrieves a draft by ID.
	// Returns nil, nil if the draft doesn't exist.
	Load(ctx context.Context, id string) (*Draft, error)

	// Save stores a draft, replacing any previous version.
	Save(ctx context.Context, d *Draft) error

	// Delete removes a draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// LoadOrDefault returns the saved code for id, or defaultCode when nothing
// has been saved yet.
func LoadOrDefault(ctx context.Context, s Store, id, defaultCode string) (string, error) {
	d, err := s.Load(ctx, id)
	if err != nil {
		return "", err
	}
	if d == nil {
		return defaultCode, nil
	}
	return d.Code, nil
}

func validate(d *Draft) error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidInput, "draft is nil")
	}
	return errors.ValidateDraftID(d.ID)
}
