package activity

import (
	"context"

	domain "lawcal/internal/domain/activity"
)

// Store persists append-only activity entries.
type Store interface {
	Append(ctx context.Context, e domain.Entry) error
	ListByCase(ctx context.Context, caseID string) ([]domain.Entry, error)
}
