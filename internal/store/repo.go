package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lugat/internal/vocab"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrAmbiguous is returned when an id prefix matches more than one record.
var ErrAmbiguous = errors.New("store: ambiguous id prefix")

// ResultRecord is one finished quiz session kept in the local journal.
type ResultRecord struct {
	ID         uuid.UUID
	SessionID  vocab.ID
	Direction  vocab.Direction
	Start      int
	End        int
	Result     vocab.SessionResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// ResultRepo stores finished session results.
type ResultRepo interface {
	// Save stores a new record, assigning an ID if it has none.
	Save(ctx context.Context, rec *ResultRecord) error

	// List returns the most recent records first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]ResultRecord, error)

	// Get returns the record with the given ID, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*ResultRecord, error)

	// Resolve finds a record by full ID or unique ID prefix.
	Resolve(ctx context.Context, prefix string) (*ResultRecord, error)
}

// Credentials are the tokens of the signed-in user.
type Credentials struct {
	UserID   vocab.ID
	Email    string
	Username string
	Access   string
	Refresh  string
	// APIURL is the backend the tokens were issued by.
	APIURL  string
	SavedAt time.Time
}

// CredentialRepo keeps at most one set of credentials.
type CredentialRepo interface {
	// Save replaces any stored credentials.
	Save(ctx context.Context, c Credentials) error

	// Load returns the stored credentials, or nil if there are none.
	Load(ctx context.Context) (*Credentials, error)

	// Clear removes the stored credentials.
	Clear(ctx context.Context) error
}
