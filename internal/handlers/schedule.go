// ABOUTME: HTTP handlers for the daily schedule
// ABOUTME: Read, save and delete the scheduled check-in time

package handlers

import (
	"net/http"
	"strings"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
)

// GetSchedule returns the schedule with its computed next run
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	sc, err := h.schedule.Get(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "", sc)
}

// SaveSchedule enables or disables the daily run
func (h *Handler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if !decode(w, r, &req) {
		return
	}
	req.Time = strings.TrimSpace(req.Time)
	if msg, ok := h.validator.Check(req); !ok {
		writeFailure(w, msg)
		return
	}
	sc, err := h.schedule.Save(r.Context(), req.Enabled, req.Time)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "schedule saved", sc)
}

// DeleteSchedule disables the schedule and clears its time
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.schedule.Delete(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	writeOK(w, "schedule deleted", nil)
}
