package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"restorativeLandsAPI/services"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
	}
}

func (h *AchievementHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.achievementService.GetAll())
}

func (h *AchievementHandler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	unlocked, err := h.achievementService.GetUnlocked(ctx, mux.Vars(r)["user_id"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, unlocked)
}
