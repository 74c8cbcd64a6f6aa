package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/bookhive/bookhive-go/internal/validation"
)

// envelope is the uniform response body: every endpoint answers with
// status, data and message, mirroring the HTTP status code.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func respondSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeEnvelope(w, status, envelope{Status: "success", Data: data, Message: message})
}

func respondFailed(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Status: "failed", Message: message})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	if env.Data == nil {
		env.Data = []any{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// respondInternal hides the error behind a stable message and logs the
// detail server-side.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	respondFailed(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON reads a JSON body into dst with a size cap. It writes the
// failure response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondFailed(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		respondFailed(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	return true
}

// validatePayload runs struct validation and, on failure, writes a 400
// with per-field detail in data.
func validatePayload(w http.ResponseWriter, payload any) bool {
	err := validation.Struct(payload)
	if err == nil {
		return true
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		writeEnvelope(w, http.StatusBadRequest, envelope{
			Status:  "failed",
			Data:    map[string]any{"fields": verr.Fields},
			Message: "Validation failed",
		})
		return false
	}

	respondFailed(w, http.StatusBadRequest, "Validation failed")
	return false
}

// urlID parses the numeric {id} route parameter.
func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// queryInt reads an integer query parameter, falling back on absence
// or garbage.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// queryInt64 reads an int64 query parameter, zero on absence.
func queryInt64(r *http.Request, name string) int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
