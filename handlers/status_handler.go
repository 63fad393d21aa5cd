package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"restorativeLandsAPI/internal/oasis"
	"restorativeLandsAPI/internal/status"
	"restorativeLandsAPI/services"
)

type StatusHandler struct {
	statusService *services.StatusService
}

func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *StatusHandler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req status.CreateCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	check, err := h.statusService.CreateCheck(ctx, &req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, check)
}

func (h *StatusHandler) GetChecks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks, err := h.statusService.GetChecks(ctx)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, checks)
}

func (h *StatusHandler) GetOasisStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, oasis.Current())
}
