package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"lawcal/internal/adapters/http/middleware"
	casefileStore "lawcal/internal/adapters/storage/casefile"
	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/application/orchestrators"
	accountDomain "lawcal/internal/domain/account"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/casefile"
	sessionDomain "lawcal/internal/domain/session"
	suggestDomain "lawcal/internal/domain/suggest"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// apiError maps known domain errors to HTTP statuses. Anything
// unrecognized is treated as internal.
func apiError(w http.ResponseWriter, err error) {
	var parseErr *time.ParseError
	switch {
	case errors.Is(err, casefileStore.ErrNotFound),
		errors.Is(err, sessionStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, casefile.ErrNotActive),
		errors.Is(err, casefile.ErrAlreadyActive),
		errors.Is(err, casefile.ErrDeleted),
		errors.Is(err, sessionDomain.ErrNotScheduled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, casefile.ErrEmptyTitle),
		errors.Is(err, casefile.ErrTooManyLawyers),
		errors.Is(err, casefile.ErrLawyerNameLength),
		errors.Is(err, sessionDomain.ErrEmptyDate),
		errors.Is(err, sessionDomain.ErrPostponeNotSet),
		errors.Is(err, sessionDomain.ErrPostponeInPast),
		errors.Is(err, sessionDomain.ErrReasonTooLong),
		errors.Is(err, orchestrators.ErrEmptyNote),
		errors.Is(err, orchestrators.ErrNoteTooLong),
		errors.Is(err, orchestrators.ErrUnknownField),
		errors.As(err, &parseErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, err)
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireAdminAPI enforces the server-side authorization boundary for
// mutations. Visitors browse read-only; every write needs an admin session.
func requireAdminAPI(w http.ResponseWriter, r *http.Request) bool {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return false
	}
	if sess.Role != accountDomain.RoleAdmin {
		http.Error(w, "admin required", http.StatusForbidden)
		return false
	}
	return true
}

// renderMarkdown converts markdown to sanitized HTML. On conversion
// failure the raw text is escaped instead.
func renderMarkdown(md string) string {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return html.EscapeString(md)
	}
	return buf.String()
}

// JSON response shapes. Domain structs stay tag-free; the wire format is
// the adapter's concern.

type caseJSON struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	CourtName           string    `json:"court_name,omitempty"`
	Lawyers             []string  `json:"lawyers"`
	Reviewer            string    `json:"reviewer,omitempty"`
	Description         string    `json:"description,omitempty"`
	LongDescription     string    `json:"long_description,omitempty"`
	LongDescriptionHTML string    `json:"long_description_html,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

func toCaseJSON(c casefile.Case) caseJSON {
	lawyers := c.Lawyers
	if lawyers == nil {
		lawyers = []string{}
	}
	return caseJSON{
		ID:                  c.ID,
		Title:               c.Title,
		CourtName:           c.CourtName,
		Lawyers:             lawyers,
		Reviewer:            c.Reviewer,
		Description:         c.Description,
		LongDescription:     c.LongDescription,
		LongDescriptionHTML: renderMarkdown(c.LongDescription),
		Status:              c.Status,
		CreatedAt:           c.CreatedAt,
	}
}

type sessionJSON struct {
	ID             string    `json:"id"`
	CaseID         string    `json:"case_id"`
	Date           string    `json:"date"`
	Status         string    `json:"status"`
	PostponedTo    string    `json:"postponed_to,omitempty"`
	PostponeReason string    `json:"postpone_reason,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toSessionJSON(s sessionDomain.Session) sessionJSON {
	out := sessionJSON{
		ID:             s.ID,
		CaseID:         s.CaseID,
		Date:           s.DateString(),
		Status:         s.Status,
		PostponeReason: s.PostponeReason,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}
	if !s.PostponedTo.IsZero() {
		out.PostponedTo = s.PostponedTo.Format(sessionDomain.DateLayout)
	}
	return out
}

type calendarRowJSON struct {
	sessionJSON
	CaseTitle  string   `json:"case_title"`
	CourtName  string   `json:"court_name,omitempty"`
	Lawyers    []string `json:"lawyers"`
	Reviewer   string   `json:"reviewer,omitempty"`
	CaseStatus string   `json:"case_status"`
}

func toCalendarRowJSON(r sessionDomain.CalendarRow) calendarRowJSON {
	lawyers := r.Lawyers
	if lawyers == nil {
		lawyers = []string{}
	}
	return calendarRowJSON{
		sessionJSON: toSessionJSON(r.Session),
		CaseTitle:   r.CaseTitle,
		CourtName:   r.CourtName,
		Lawyers:     lawyers,
		Reviewer:    r.Reviewer,
		CaseStatus:  r.CaseStatus,
	}
}

// entryJSON decorates an activity entry with rendered note HTML.
type entryJSON struct {
	activity.Entry
	DescriptionHTML string `json:"description_html,omitempty"`
}

func toEntryJSON(e activity.Entry) entryJSON {
	out := entryJSON{Entry: e}
	if e.ActionType == activity.ActionNoteAdded {
		out.DescriptionHTML = renderMarkdown(e.Description)
	}
	return out
}

// registerRoutes attaches all API routes. The SPA itself is served from
// the static file root.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/auth/status", handleAuthStatus)
	mux.HandleFunc("/api/calendar", handleCalendar)
	mux.HandleFunc("/calendar.ics", handleCalendarFeed)
	mux.HandleFunc("/api/cases", handleCases)
	mux.HandleFunc("/api/cases/", handleCaseByID)
	mux.HandleFunc("/api/sessions/", handleSessionByID)
	mux.HandleFunc("/api/suggest", handleSuggest)
	mux.HandleFunc("/api/suggest/used", handleSuggestUsed)
}

// handleLogin handles POST /api/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Password string `json:"password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{Password: input.Password}, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrAccountLocked):
			http.Error(w, err.Error(), http.StatusLocked)
		case errors.Is(err, orchestrators.ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			internalError(w, err)
		}
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"email":         result.Email,
		"role":          result.Role,
	})
}

// handleLogout handles POST /api/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleAuthStatus handles GET /api/auth/status. The SPA calls this on
// load to decide whether to show admin controls; the server remains the
// enforcement point regardless.
func handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"email":         sess.Email,
		"role":          sess.Role,
	})
}

// handleSuggest handles GET /api/suggest?field=court_name&q=dis
func handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	field := r.URL.Query().Get("field")
	query := r.URL.Query().Get("q")

	deps := orchestrators.SuggestDeps{
		SuggestStore: stores.SuggestStore,
		Now:          timeNow,
	}
	values, err := orchestrators.ExecuteSuggest(r.Context(), field, query, deps)
	if err != nil {
		apiError(w, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	writeJSON(w, http.StatusOK, values)
}

// handleSuggestUsed handles POST /api/suggest/used. Picking a suggestion
// moves it to the front of the field's most-recently-used list.
func handleSuggestUsed(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAdminAPI(w, r) {
		return
	}

	var input struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !suggestDomain.ValidField(input.Field) {
		http.Error(w, "unknown suggestion field", http.StatusBadRequest)
		return
	}

	deps := orchestrators.SuggestDeps{
		SuggestStore: stores.SuggestStore,
		Now:          timeNow,
	}
	if err := orchestrators.ExecuteRememberSuggestion(r.Context(), input.Field, input.Value, deps); err != nil {
		apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
