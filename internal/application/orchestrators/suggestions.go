package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	suggestStore "lawcal/internal/adapters/storage/suggest"
	"lawcal/internal/domain/suggest"
)

var ErrUnknownField = errors.New("field must be one of: court_name, reviewer, lawyers")

// SuggestDeps holds dependencies for the suggestion orchestrators.
type SuggestDeps struct {
	SuggestStore suggestStore.Store
	Now          func() time.Time
}

// ExecuteSuggest returns autocomplete suggestions for a free-text field:
// the field's most-recently-used values first, then historical values
// ranked by frequency, case-insensitively de-duplicated and filtered by
// the query substring.
// PRE: field names a suggestible field
// POST: result is MRU-first with no duplicates
func ExecuteSuggest(ctx context.Context, field, query string, deps SuggestDeps) ([]string, error) {
	if !suggest.ValidField(field) {
		return nil, ErrUnknownField
	}

	mru, err := deps.SuggestStore.GetMRU(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("failed to load MRU list: %w", err)
	}
	values, err := deps.SuggestStore.FieldValues(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("failed to load field values: %w", err)
	}

	return suggest.Rank(query, mru, values), nil
}

// ExecuteRememberSuggestion records that a suggestion was chosen, moving
// it to the front of the field's MRU list (cap suggest.MaxMRU).
// PRE: field names a suggestible field; value is non-empty
// POST: value is at the front of the persisted MRU list
func ExecuteRememberSuggestion(ctx context.Context, field, value string, deps SuggestDeps) error {
	if !suggest.ValidField(field) {
		return ErrUnknownField
	}

	mru, err := deps.SuggestStore.GetMRU(ctx, field)
	if err != nil {
		return fmt.Errorf("failed to load MRU list: %w", err)
	}
	updated := suggest.Remember(mru, value)
	if err := deps.SuggestStore.SaveMRU(ctx, field, updated, deps.Now()); err != nil {
		return fmt.Errorf("failed to save MRU list: %w", err)
	}

	slog.Debug("suggest_event", "event", "mru_updated", "field", field)
	return nil
}
