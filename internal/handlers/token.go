// ABOUTME: HTTP handlers for credential endpoints
// ABOUTME: Token status, login token storage, refresh and NewAPI configuration

package handlers

import (
	"net/http"
	"strings"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
)

// TokenStatus returns the credential snapshot with service-token validity
func (h *Handler) TokenStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.tokens.Status(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "", status)
}

// SetToken stores the linux.do login token
func (h *Handler) SetToken(w http.ResponseWriter, r *http.Request) {
	var req models.SetTokenRequest
	if !decode(w, r, &req) {
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if msg, ok := h.validator.Check(req); !ok {
		writeFailure(w, msg)
		return
	}
	if err := h.tokens.SetLoginToken(r.Context(), req.Token); err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "login token saved", nil)
}

// RefreshToken exchanges the stored login token for a new service token
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	result, err := h.tokens.Refresh(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "token refreshed", result)
}

// NewAPIStatus returns the masked NewAPI configuration
func (h *Handler) NewAPIStatus(w http.ResponseWriter, r *http.Request) {
	state, err := h.tokens.NewAPIStatus(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "", state)
}

// SetNewAPI stores the NewAPI authorization and user ID
func (h *Handler) SetNewAPI(w http.ResponseWriter, r *http.Request) {
	var req models.NewAPIRequest
	if !decode(w, r, &req) {
		return
	}
	req.Authorization = strings.TrimSpace(req.Authorization)
	req.UserID = strings.TrimSpace(req.UserID)
	if msg, ok := h.validator.Check(req); !ok {
		writeFailure(w, msg)
		return
	}
	state, err := h.tokens.SetNewAPI(r.Context(), req.Authorization, req.UserID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "NewAPI settings saved", state)
}
