package orchestrators

import (
	"context"
	"fmt"
	"time"

	"lawcal/internal/adapters/email"
	accountStore "lawcal/internal/adapters/storage/account"
	casefileStore "lawcal/internal/adapters/storage/casefile"
	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/domain/account"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/casefile"
	"lawcal/internal/domain/session"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// seqIDs returns a generator producing id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// mockCaseStore implements casefileStore.Store in memory. Soft-deleted
// cases are hidden from GetByID like the real store.
type mockCaseStore struct {
	cases    map[string]casefile.Case
	sessions map[string]session.Session
	entries  []activity.Entry
	saveErr  error
}

func newMockCaseStore() *mockCaseStore {
	return &mockCaseStore{
		cases:    make(map[string]casefile.Case),
		sessions: make(map[string]session.Session),
	}
}

func (m *mockCaseStore) CreateWithSession(_ context.Context, c casefile.Case, s session.Session, entries []activity.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cases[c.ID] = c
	m.sessions[s.ID] = s
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockCaseStore) GetByID(_ context.Context, id string) (casefile.Case, error) {
	c, ok := m.cases[id]
	if !ok || !c.DeletedAt.IsZero() {
		return casefile.Case{}, casefileStore.ErrNotFound
	}
	return c, nil
}

func (m *mockCaseStore) Update(_ context.Context, c casefile.Case, entry activity.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	old, ok := m.cases[c.ID]
	if !ok || !old.DeletedAt.IsZero() {
		return casefileStore.ErrNotFound
	}
	m.cases[c.ID] = c
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockCaseStore) SoftDelete(_ context.Context, id string, at time.Time, entry activity.Entry) error {
	c, ok := m.cases[id]
	if !ok || !c.DeletedAt.IsZero() {
		return casefileStore.ErrNotFound
	}
	c.DeletedAt = at
	m.cases[id] = c
	m.entries = append(m.entries, entry)
	return nil
}

// mockSessionStore implements sessionStore.Store in memory.
type mockSessionStore struct {
	sessions map[string]session.Session
	rows     []session.CalendarRow
	entries  []activity.Entry
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]session.Session)}
}

func (m *mockSessionStore) GetByID(_ context.Context, id string) (session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, sessionStore.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionStore) ListByCase(_ context.Context, caseID string) ([]session.Session, error) {
	var out []session.Session
	for _, s := range m.sessions {
		if s.CaseID == caseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionStore) ListCalendarRange(_ context.Context, from, to string) ([]session.CalendarRow, error) {
	var out []session.CalendarRow
	for _, r := range m.rows {
		if d := r.DateString(); d >= from && d <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockSessionStore) Update(_ context.Context, s session.Session, entry activity.Entry) error {
	if _, ok := m.sessions[s.ID]; !ok {
		return sessionStore.ErrNotFound
	}
	m.sessions[s.ID] = s
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockSessionStore) Postpone(_ context.Context, old session.Session, replacement session.Session, entry activity.Entry) error {
	if _, ok := m.sessions[old.ID]; !ok {
		return sessionStore.ErrNotFound
	}
	m.sessions[old.ID] = old
	// Conflict-ignored on (case_id, session_date) like the real store
	occupied := false
	for _, s := range m.sessions {
		if s.CaseID == replacement.CaseID && s.DateString() == replacement.DateString() && s.ID != old.ID {
			occupied = true
			break
		}
	}
	if !occupied {
		m.sessions[replacement.ID] = replacement
	}
	m.entries = append(m.entries, entry)
	return nil
}

// mockActivityStore implements activityStore.Store in memory.
type mockActivityStore struct {
	entries   []activity.Entry
	appendErr error
}

func (m *mockActivityStore) Append(_ context.Context, e activity.Entry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockActivityStore) ListByCase(_ context.Context, caseID string) ([]activity.Entry, error) {
	var out []activity.Entry
	for _, e := range m.entries {
		if e.CaseID == caseID {
			out = append(out, e)
		}
	}
	return out, nil
}

// mockSuggestStore implements suggestStore.Store in memory.
type mockSuggestStore struct {
	values  map[string][]string
	mru     map[string][]string
	savedAt time.Time
}

func newMockSuggestStore() *mockSuggestStore {
	return &mockSuggestStore{
		values: make(map[string][]string),
		mru:    make(map[string][]string),
	}
}

func (m *mockSuggestStore) FieldValues(_ context.Context, field string) ([]string, error) {
	return m.values[field], nil
}

func (m *mockSuggestStore) GetMRU(_ context.Context, field string) ([]string, error) {
	return m.mru[field], nil
}

func (m *mockSuggestStore) SaveMRU(_ context.Context, field string, list []string, at time.Time) error {
	m.mru[field] = list
	m.savedAt = at
	return nil
}

// mockAccountStore implements accountStore.Store in memory.
type mockAccountStore struct {
	accounts map[string]account.Account
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *mockAccountStore) GetAdmin(_ context.Context) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Role == account.RoleAdmin {
			return a, nil
		}
	}
	return account.Account{}, accountStore.ErrNotFound
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, accountStore.ErrNotFound
}

// mockSender implements email.Sender, recording requests.
type mockSender struct {
	sent    []email.SendRequest
	sendErr error
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.sendErr != nil {
		return email.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: fixedTime}, nil
}
