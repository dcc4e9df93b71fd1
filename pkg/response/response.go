// Package response writes the API's JSON wire shapes. Bodies are flat:
// no status/data envelope, errors are {"message": ...}.
package response

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends an arbitrary body with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	write(w, status, body)
}

// Error sends {"message": msg}.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"message": message})
}

// ServerError sends a 500 with the underlying error text alongside the message.
func ServerError(w http.ResponseWriter, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	write(w, http.StatusInternalServerError, body)
}

// ValidationError sends a 400 carrying the first field failure.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	for _, msg := range errs {
		Error(w, http.StatusBadRequest, msg)
		return
	}
	Error(w, http.StatusBadRequest, "Invalid request body")
}

// Page sends a 200 list response: {total, page, limit, totalPages, <key>: items}.
func Page(w http.ResponseWriter, key string, items any, total int64, page, limit, totalPages int) {
	write(w, http.StatusOK, map[string]any{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
		key:          items,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Admin access required")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}
