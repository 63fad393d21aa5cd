package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restorativeLandsAPI/handlers"
	"restorativeLandsAPI/internal/config"
	"restorativeLandsAPI/internal/logger"
	"restorativeLandsAPI/middleware"
)

type routeHandlers struct {
	users        *handlers.UserHandler
	sessions     *handlers.SessionHandler
	rewards      *handlers.RewardHandler
	achievements *handlers.AchievementHandler
	courses      *handlers.CourseHandler
	moods        *handlers.MoodHandler
	leaderboard  *handlers.LeaderboardHandler
	donations    *handlers.DonationHandler
	status       *handlers.StatusHandler
}

func newRouter(cfg config.Config, pool *pgxpool.Pool, h routeHandlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MonitorMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(cfg.PprofSecret)(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := pool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "restorative-lands-api"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/", h.status.Root).Methods("GET")
	api.HandleFunc("/status", h.status.CreateCheck).Methods("POST")
	api.HandleFunc("/status", h.status.GetChecks).Methods("GET")

	api.HandleFunc("/users", h.users.CreateUser).Methods("POST")
	api.HandleFunc("/users/{id}", h.users.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}", h.users.UpdateUser).Methods("PUT")

	api.HandleFunc("/breathing-sessions", h.sessions.LogSession).Methods("POST")
	api.HandleFunc("/breathing-sessions/{user_id}", h.sessions.GetSessions).Methods("GET")
	api.HandleFunc("/breathing-patterns", h.sessions.GetPatterns).Methods("GET")

	api.HandleFunc("/zen-coins/award", h.rewards.Award).Methods("POST")
	api.HandleFunc("/zen-coins/{id}/balance", h.rewards.GetBalance).Methods("GET")
	api.HandleFunc("/zen-coins/{id}/transactions", h.rewards.GetTransactions).Methods("GET")

	api.HandleFunc("/achievements", h.achievements.GetAchievements).Methods("GET")
	api.HandleFunc("/achievements/{user_id}", h.achievements.GetUserAchievements).Methods("GET")

	api.HandleFunc("/courses", h.courses.GetCourses).Methods("GET")
	api.HandleFunc("/courses/{user_id}/available", h.courses.GetAvailableCourses).Methods("GET")
	api.HandleFunc("/courses/{course_id}/complete", h.courses.CompleteCourse).Methods("POST")

	api.HandleFunc("/mood-diary", h.moods.CreateEntry).Methods("POST")
	api.HandleFunc("/mood-diary/{user_id}", h.moods.GetEntries).Methods("GET")

	api.HandleFunc("/leaderboard", h.leaderboard.GetLeaderboard).Methods("GET")

	api.HandleFunc("/donations/create-session", h.donations.CreateSession).Methods("POST")
	api.HandleFunc("/donations/status/{session_id}", h.donations.GetStatus).Methods("GET")
	api.HandleFunc("/donations/confirm/{session_id}", h.donations.Confirm).Methods("POST")
	api.HandleFunc("/donations/packages", h.donations.GetPackages).Methods("GET")

	api.HandleFunc("/oasis/stats", h.status.GetOasisStats).Methods("GET")

	return r
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Error("recovered from panic", "err", fmt.Sprint(v...))
}

func withCORSAndRecovery(router http.Handler) http.Handler {
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	recovery := gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{}),
		gorillaHandlers.PrintRecoveryStack(true),
	)

	return recovery(corsHandler(router))
}
