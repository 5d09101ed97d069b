// ABOUTME: HTTP handlers for the check-in API
// ABOUTME: Decodes requests, calls the services and writes {success, message, data} envelopes

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/services"
)

// maxBodyBytes bounds request bodies; every payload is a handful of short strings
const maxBodyBytes = 64 << 10

// Pinger reports database reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	tokens    *services.TokenService
	sign      *services.SignService
	schedule  *services.ScheduleService
	db        Pinger
	validator *requestValidator
}

func NewHandler(tokens *services.TokenService, sign *services.SignService, schedule *services.ScheduleService, db Pinger) *Handler {
	return &Handler{
		tokens:    tokens,
		sign:      sign,
		schedule:  schedule,
		db:        db,
		validator: newRequestValidator(),
	}
}

// writeJSON writes any value as JSON with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

// writeOK writes a successful envelope
func writeOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, models.Envelope{Success: true, Message: message, Data: data})
}

// writeFailure writes a business failure. The HTTP status stays 200.
func writeFailure(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, models.Envelope{Success: false, Message: message})
}

// writeError writes a failed envelope with a non-200 status
func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, models.Envelope{Success: false, Message: message})
}

// decode reads a JSON body into dst. It writes the 400 itself and returns false on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		zap.L().Debug("malformed request body", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// businessErrors are reported to the caller as success:false with their message
var businessErrors = []error{
	services.ErrEmptyToken,
	services.ErrNoLoginToken,
	services.ErrNoServiceToken,
	services.ErrLoginNotConfigured,
	services.ErrRefreshFailed,
	services.ErrNewAPINotConfigured,
	services.ErrScheduleTimeRequired,
	services.ErrInvalidScheduleTime,
}

// fail maps a service error onto the response
func fail(w http.ResponseWriter, r *http.Request, err error) {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			writeFailure(w, err.Error())
			return
		}
	}
	zap.L().Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, "internal server error", http.StatusInternalServerError)
}
