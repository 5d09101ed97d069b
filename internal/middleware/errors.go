// ABOUTME: JSON error response helper for middleware
// ABOUTME: Writes the same {success, message} envelope the handlers use

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
)

// writeJSONError writes a failed envelope with the given status code
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.Envelope{Success: false, Message: message})
}
