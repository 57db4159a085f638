package web

import (
	"net/http"
	"strings"

	"lawcal/internal/adapters/http/middleware"
	"lawcal/internal/application/orchestrators"
	sessionDomain "lawcal/internal/domain/session"
)

// handleSessionByID dispatches /api/sessions/{id}/{action}.
// Routes:
//
//	POST /api/sessions/{id}/postpone  reschedule to a later date (admin)
//	POST /api/sessions/{id}/complete  mark the session held (admin)
//	POST /api/sessions/{id}/cancel    cancel the session (admin)
func handleSessionByID(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[0] != "api" || parts[1] != "sessions" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAdminAPI(w, r) {
		return
	}

	sessionID := parts[2]
	switch parts[3] {
	case "postpone":
		handlePostponeSession(w, r, sessionID)
	case "complete", "cancel":
		handleSessionTransition(w, r, sessionID, parts[3])
	default:
		http.NotFound(w, r)
	}
}

func handlePostponeSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var input struct {
		ToDate string `json:"to_date"`
		Reason string `json:"reason"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.PostponeSessionDeps{
		SessionStore: stores.SessionStore,
		CaseStore:    stores.CaseStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}
	postponed, err := orchestrators.ExecutePostponeSession(r.Context(), orchestrators.PostponeSessionInput{
		SessionID: sessionID,
		ToDate:    input.ToDate,
		Reason:    input.Reason,
		Actor:     sess.AccountID,
	}, deps)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(postponed))
}

func handleSessionTransition(w http.ResponseWriter, r *http.Request, sessionID, action string) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	deps := orchestrators.SessionStatusDeps{
		SessionStore: stores.SessionStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	var s sessionDomain.Session
	var err error
	switch action {
	case "complete":
		s, err = orchestrators.ExecuteCompleteSession(r.Context(), sessionID, sess.AccountID, deps)
	case "cancel":
		s, err = orchestrators.ExecuteCancelSession(r.Context(), sessionID, sess.AccountID, deps)
	}
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(s))
}
