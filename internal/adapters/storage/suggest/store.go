package suggest

import (
	"context"
	"time"
)

// HistoryLimit caps how many recent cases feed the frequency ranking.
const HistoryLimit = 1000

// Store reads historical field values and persists per-field MRU lists.
type Store interface {
	// FieldValues returns the given field's values from the most recent
	// HistoryLimit non-deleted cases, newest first. Array-valued fields
	// (lawyers) are flattened.
	FieldValues(ctx context.Context, field string) ([]string, error)
	// GetMRU returns the MRU list for a field, most recent first.
	GetMRU(ctx context.Context, field string) ([]string, error)
	// SaveMRU replaces the MRU list for a field.
	SaveMRU(ctx context.Context, field string, list []string, at time.Time) error
}
