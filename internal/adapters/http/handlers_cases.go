package web

import (
	"net/http"
	"strings"

	"lawcal/internal/adapters/http/middleware"
	"lawcal/internal/application/orchestrators"
	"lawcal/internal/domain/casefile"
)

// handleCases handles POST /api/cases: create a case with its first
// scheduled session.
func handleCases(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAdminAPI(w, r) {
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var input struct {
		Title           string   `json:"title"`
		CourtName       string   `json:"court_name"`
		Lawyers         []string `json:"lawyers"`
		Reviewer        string   `json:"reviewer"`
		Description     string   `json:"description"`
		LongDescription string   `json:"long_description"`
		SessionDate     string   `json:"session_date"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.CreateCaseDeps{
		CaseStore:  stores.CaseStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
	c, s, err := orchestrators.ExecuteCreateCase(r.Context(), orchestrators.CreateCaseInput{
		Title:           input.Title,
		CourtName:       input.CourtName,
		Lawyers:         input.Lawyers,
		Reviewer:        input.Reviewer,
		Description:     input.Description,
		LongDescription: input.LongDescription,
		SessionDate:     input.SessionDate,
		CreatedBy:       sess.AccountID,
	}, deps)
	if err != nil {
		apiError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"case":    toCaseJSON(c),
		"session": toSessionJSON(s),
	})
}

// handleCaseByID dispatches /api/cases/{id} and /api/cases/{id}/{action}.
// Routes:
//
//	GET    /api/cases/{id}           case detail with its sessions
//	PATCH  /api/cases/{id}           partial edit (admin)
//	DELETE /api/cases/{id}           soft delete (admin)
//	POST   /api/cases/{id}/complete  mark completed (admin)
//	POST   /api/cases/{id}/cancel    mark cancelled (admin)
//	POST   /api/cases/{id}/reopen    back to active (admin)
//	POST   /api/cases/{id}/notes     append a timeline note (admin)
//	GET    /api/cases/{id}/activity  full activity log
func handleCaseByID(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || len(parts) > 4 || parts[0] != "api" || parts[1] != "cases" {
		http.NotFound(w, r)
		return
	}
	caseID := parts[2]

	if len(parts) == 3 {
		switch r.Method {
		case "GET":
			handleGetCase(w, r, caseID)
		case "PATCH":
			handlePatchCase(w, r, caseID)
		case "DELETE":
			handleDeleteCase(w, r, caseID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	action := parts[3]
	switch {
	case r.Method == "GET" && action == "activity":
		handleCaseActivity(w, r, caseID)
	case r.Method == "POST" && action == "notes":
		handleAddNote(w, r, caseID)
	case r.Method == "POST" && (action == "complete" || action == "cancel" || action == "reopen"):
		handleCaseTransition(w, r, caseID, action)
	default:
		http.NotFound(w, r)
	}
}

func handleGetCase(w http.ResponseWriter, r *http.Request, caseID string) {
	ctx := r.Context()

	c, err := stores.CaseStore.GetByID(ctx, caseID)
	if err != nil {
		apiError(w, err)
		return
	}
	caseSessions, err := stores.SessionStore.ListByCase(ctx, caseID)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]sessionJSON, 0, len(caseSessions))
	for _, s := range caseSessions {
		out = append(out, toSessionJSON(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"case":     toCaseJSON(c),
		"sessions": out,
	})
}

func handlePatchCase(w http.ResponseWriter, r *http.Request, caseID string) {
	if !requireAdminAPI(w, r) {
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	// Pointer fields distinguish "not sent" from "set to empty".
	var input struct {
		Title           *string   `json:"title"`
		CourtName       *string   `json:"court_name"`
		Lawyers         *[]string `json:"lawyers"`
		Reviewer        *string   `json:"reviewer"`
		Description     *string   `json:"description"`
		LongDescription *string   `json:"long_description"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.UpdateCaseDeps{
		CaseStore:  stores.CaseStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
	c, err := orchestrators.ExecuteUpdateCase(r.Context(), orchestrators.UpdateCaseInput{
		CaseID:          caseID,
		Title:           input.Title,
		CourtName:       input.CourtName,
		Lawyers:         input.Lawyers,
		Reviewer:        input.Reviewer,
		Description:     input.Description,
		LongDescription: input.LongDescription,
		UpdatedBy:       sess.AccountID,
	}, deps)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCaseJSON(c))
}

func handleDeleteCase(w http.ResponseWriter, r *http.Request, caseID string) {
	if !requireAdminAPI(w, r) {
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	deps := orchestrators.CaseStatusDeps{
		CaseStore:  stores.CaseStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
	if err := orchestrators.ExecuteDeleteCase(r.Context(), caseID, sess.AccountID, deps); err != nil {
		apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleCaseTransition(w http.ResponseWriter, r *http.Request, caseID, action string) {
	if !requireAdminAPI(w, r) {
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	deps := orchestrators.CaseStatusDeps{
		CaseStore:  stores.CaseStore,
		GenerateID: generateID,
		Now:        timeNow,
	}

	var c casefile.Case
	var err error
	switch action {
	case "complete":
		c, err = orchestrators.ExecuteCompleteCase(r.Context(), caseID, sess.AccountID, deps)
	case "cancel":
		c, err = orchestrators.ExecuteCancelCase(r.Context(), caseID, sess.AccountID, deps)
	case "reopen":
		c, err = orchestrators.ExecuteReopenCase(r.Context(), caseID, sess.AccountID, deps)
	}
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCaseJSON(c))
}

func handleAddNote(w http.ResponseWriter, r *http.Request, caseID string) {
	if !requireAdminAPI(w, r) {
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var input struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.AddNoteDeps{
		CaseStore:     stores.CaseStore,
		ActivityStore: stores.ActivityStore,
		GenerateID:    generateID,
		Now:           timeNow,
	}
	entry, err := orchestrators.ExecuteAddNote(r.Context(), orchestrators.AddNoteInput{
		CaseID:    caseID,
		SessionID: input.SessionID,
		Message:   input.Message,
		Actor:     sess.AccountID,
	}, deps)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryJSON(entry))
}

func handleCaseActivity(w http.ResponseWriter, r *http.Request, caseID string) {
	ctx := r.Context()

	// Resolving the case first keeps soft-deleted timelines hidden.
	if _, err := stores.CaseStore.GetByID(ctx, caseID); err != nil {
		apiError(w, err)
		return
	}
	entries, err := stores.ActivityStore.ListByCase(ctx, caseID)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}
