package casefile

import (
	"context"
	"errors"
	"time"

	"lawcal/internal/domain/activity"
	domain "lawcal/internal/domain/casefile"
	sessionDomain "lawcal/internal/domain/session"
)

// ErrNotFound is returned when a case does not exist or has been
// soft-deleted.
var ErrNotFound = errors.New("case not found")

// Store persists Case state. Lifecycle transitions that touch more than
// one row are transactional: either every row commits or none do.
type Store interface {
	// CreateWithSession inserts the case, its first scheduled session and
	// the opening activity entries in a single transaction.
	CreateWithSession(ctx context.Context, c domain.Case, s sessionDomain.Session, entries []activity.Entry) error
	// GetByID returns a case; soft-deleted cases are reported as ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Case, error)
	// Update writes the mutable fields and status of a case together with
	// an activity entry, in one transaction.
	Update(ctx context.Context, c domain.Case, entry activity.Entry) error
	// SoftDelete stamps deleted_at and appends the activity entry, in one
	// transaction.
	SoftDelete(ctx context.Context, id string, at time.Time, entry activity.Entry) error
}
