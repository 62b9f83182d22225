// Package api provides the HTTP server for Serene: the wellness record
// endpoints the app screens call, and the engagement read endpoints that
// back the stats header and badge gallery.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/serene-app/serene/internal/app/engagement"
	"github.com/serene-app/serene/internal/app/points"
	"github.com/serene-app/serene/internal/app/wellness"
	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/infra/sqlite"
)

// Server is the Serene HTTP API server.
type Server struct {
	db             *sqlite.DB
	wellness       *wellness.Service
	tracker        *engagement.StreakTracker
	notifier       *engagement.Notifier
	ledger         *points.Ledger
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, well *wellness.Service, tracker *engagement.StreakTracker,
	notifier *engagement.Notifier, ledger *points.Ledger) *Server {
	return &Server{
		db:       db,
		wellness: well,
		tracker:  tracker,
		notifier: notifier,
		ledger:   ledger,
		version:  "0.1.0",
	}
}

// SetVersion sets the version string reported by /api/version.
func (s *Server) SetVersion(v string) { s.version = v }

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	// Health check for deploy platforms
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "Serene is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	// Per-user wellness records and engagement reads
	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Post("/mood", s.handleLogMood)
		r.Get("/mood", s.handleListMoods)
		r.Post("/journal", s.handleWriteJournal)
		r.Get("/journal", s.handleListJournals)
		r.Post("/tasks", s.handleCreateTask)
		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks/{taskID}/complete", s.handleCompleteTask)
		r.Post("/habits", s.handleCreateHabit)
		r.Get("/habits", s.handleListHabits)
		r.Post("/habits/{habitID}/complete", s.handleCompleteHabit)

		// Shared support room; posting is attributed, history is global
		r.Post("/chat", s.handlePostChat)
		r.Get("/chat", s.handleChatHistory)

		r.Route("/engagement", func(r chi.Router) {
			r.Get("/stats", s.handleStats)
			r.Get("/badges", s.handleBadges)
			r.Get("/points", s.handlePoints)
			r.Get("/summary", s.handleSummary)
		})
		r.Get("/notifications", s.handleNotifications)
	})

	// Badge catalog and habit history are not user-scoped
	r.Get("/api/badges", s.handleCatalog)
	r.Get("/api/habits/{habitID}/history", s.handleHabitHistory)

	r.Post("/api/notifications/{id}/shown", s.handleNotificationShown)

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrHabitNotFound),
		errors.Is(err, domain.ErrBadgeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrTaskCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrUnknownMood),
		errors.Is(err, domain.ErrMissingUserID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the app frontend.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// listLimit reads the ?limit query parameter, defaulting to 50.
func listLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 50
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 50
	}
	return limit
}
