package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"imgvault/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondDetail writes a single-message error body, DRF-style.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondFieldErrors writes per-field validation failures as a 400.
func respondFieldErrors(w http.ResponseWriter, errs validation.Errors) {
	respondJSON(w, http.StatusBadRequest, errs)
}
