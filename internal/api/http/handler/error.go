package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kozydev/kozy-server/internal/model"
)

// handleError translates service errors to HTTP responses. Validation
// failures serialize as a JSON array of coded errors; everything unclassified
// becomes a 500.
func handleError(w http.ResponseWriter, err error) {
	var validationErrs model.ValidationErrors
	if errors.As(err, &validationErrs) {
		writeJSON(w, http.StatusBadRequest, validationErrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, model.ErrEmptyFile):
		http.Error(w, "file is empty or missing", http.StatusBadRequest)
	case errors.Is(err, model.ErrFileNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidPath):
		http.Error(w, "invalid folder or file name", http.StatusBadRequest)
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
