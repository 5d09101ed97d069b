// ABOUTME: HTTP handlers for check-in endpoints
// ABOUTME: Sign now, lottery spin, sign statistics and paginated history

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/services"
)

// SignStatus returns today's state and streak statistics
func (h *Handler) SignStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.sign.Status(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "", status)
}

// SignNow runs a manual check-in
func (h *Handler) SignNow(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.sign.Sign(r.Context(), models.TriggerManual)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOutcome(w, outcome)
}

// Spin runs only the lottery with the bearer token of the request
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeFailure(w, "Authorization header is missing or invalid")
		return
	}
	writeOutcome(w, h.sign.Spin(r.Context(), token))
}

// SignLogs returns one page of history. Out-of-range paging is clamped.
func (h *Handler) SignLogs(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", services.DefaultLogPage)
	limit := queryInt(r, "limit", services.DefaultLogLimit)

	logs, err := h.sign.Logs(r.Context(), page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "", logs)
}

func writeOutcome(w http.ResponseWriter, outcome *services.SignOutcome) {
	env := models.Envelope{Success: outcome.Success, Message: outcome.Message}
	if outcome.Data != nil {
		env.Data = outcome.Data
	}
	writeJSON(w, http.StatusOK, env)
}

func bearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

// queryInt parses an integer query parameter, falling back on absence or garbage
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
