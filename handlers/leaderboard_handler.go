package handlers

import (
	"context"
	"net/http"
	"time"

	"restorativeLandsAPI/internal/leaderboard"
	"restorativeLandsAPI/services"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard caps ?limit= at leaderboard.MaxLimit.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit, ok := queryLimit(r, leaderboard.DefaultLimit)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(ctx, limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
