package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"restorativeLandsAPI/services"
)

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.courseService.GetCourses())
}

func (h *CourseHandler) GetAvailableCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	courses, err := h.courseService.GetAvailable(ctx, mux.Vars(r)["user_id"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, courses)
}

// CompleteCourse takes the user from ?user_id=.
func (h *CourseHandler) CompleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'user_id' is required")
		return
	}

	completion, err := h.courseService.CompleteCourse(ctx, mux.Vars(r)["course_id"], userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, completion)
}
