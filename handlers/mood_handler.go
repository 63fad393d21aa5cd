package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"restorativeLandsAPI/internal/mood"
	"restorativeLandsAPI/services"
)

type MoodHandler struct {
	moodService *services.MoodService
}

func NewMoodHandler(moodService *services.MoodService) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
	}
}

func (h *MoodHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req mood.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Mood.Valid() {
		respondWithError(w, http.StatusBadRequest, "Unknown mood")
		return
	}

	entry, err := h.moodService.CreateEntry(ctx, &req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

func (h *MoodHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit, ok := queryLimit(r, services.DefaultMoodLimit)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	entries, err := h.moodService.GetEntries(ctx, mux.Vars(r)["user_id"], limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
