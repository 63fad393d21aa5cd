package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"restorativeLandsAPI/internal/logger"
	"restorativeLandsAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to encode response", "err", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps service sentinels to client errors. Anything
// else is logged and answered with a generic 500.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrCourseNotFound):
		respondWithError(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, services.ErrDonationNotFound):
		respondWithError(w, http.StatusNotFound, "Donation session not found")
	case errors.Is(err, services.ErrAlreadyCompleted):
		respondWithError(w, http.StatusBadRequest, "Course already completed")
	case errors.Is(err, services.ErrInvalidAmount):
		respondWithError(w, http.StatusBadRequest, "Amount must be between $1 and $500")
	case errors.Is(err, services.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// queryLimit reads ?limit=. Absent means fallback; anything but a positive
// integer is rejected.
func queryLimit(r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, false
	}
	return limit, true
}
