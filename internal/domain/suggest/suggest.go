package suggest

import (
	"sort"
	"strings"
)

// MaxMRU is the cap on the per-field most-recently-used list.
const MaxMRU = 15

// MaxSuggestions bounds the merged result returned to the client.
const MaxSuggestions = 20

// Fields that support suggestions. Lawyers is array-valued; the others are
// scalar.
const (
	FieldCourtName = "court_name"
	FieldReviewer  = "reviewer"
	FieldLawyers   = "lawyers"
)

// ValidField reports whether f names a suggestible free-text field.
func ValidField(f string) bool {
	return f == FieldCourtName || f == FieldReviewer || f == FieldLawyers
}

// Rank merges a most-recently-used list with historical field values into
// a suggestion list for query q:
//
//   - matching is a case-insensitive substring test against q (empty q
//     matches everything),
//   - MRU matches come first, preserving MRU order,
//   - then historical matches sorted by descending frequency (ties broken
//     alphabetically for stable output),
//   - duplicates are removed case-insensitively, first occurrence wins.
//
// PRE: mru is MRU-first (most recent at index 0)
// POST: result has no duplicates and at most MaxSuggestions entries
func Rank(q string, mru []string, values []string) []string {
	needle := strings.ToLower(strings.TrimSpace(q))
	matches := func(s string) bool {
		return needle == "" || strings.Contains(strings.ToLower(s), needle)
	}

	seen := make(map[string]bool)
	var out []string
	push := func(s string) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}

	for _, s := range mru {
		if matches(s) {
			push(s)
		}
	}

	freq := make(map[string]int)
	display := make(map[string]string) // lowercase key → first-seen spelling
	for _, s := range values {
		s = strings.TrimSpace(s)
		if s == "" || !matches(s) {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := display[key]; !ok {
			display[key] = s
		}
		freq[key]++
	}

	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		push(display[k])
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// Remember returns mru with value moved (or inserted) at the front,
// case-insensitively de-duplicated and capped at MaxMRU.
// PRE: mru is MRU-first
// POST: result[0] == value; len(result) <= MaxMRU
func Remember(mru []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return mru
	}
	out := []string{value}
	key := strings.ToLower(value)
	for _, s := range mru {
		if strings.ToLower(strings.TrimSpace(s)) == key {
			continue
		}
		out = append(out, s)
		if len(out) == MaxMRU {
			break
		}
	}
	return out
}
