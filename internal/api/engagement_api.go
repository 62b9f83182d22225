package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/serene-app/serene/internal/domain"
)

// ─── Engagement reads (/api/users/{userID}/...) ─────────────────────────────
// These back the app's stats header and badge gallery. All read-only:
// engagement state changes only through activity writes.

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	stats, err := s.tracker.Stats(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if stats == nil {
		// No activity yet — the app renders zeros, not a 404
		stats = &domain.UserStats{UserID: userID}
	}
	writeJSON(w, http.StatusOK, stats)
}

// badgeView is a catalog entry flagged with the user's earned state.
type badgeView struct {
	domain.Badge
	Earned   bool  `json:"earned"`
	EarnedAt int64 `json:"earned_at,omitempty"`
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	catalog, err := s.db.AllBadges()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	awards, err := s.db.ListUserBadges(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	earnedAt := make(map[string]int64, len(awards))
	for _, a := range awards {
		earnedAt[a.BadgeID] = a.EarnedAt.Unix()
	}

	badges := make([]badgeView, 0, len(catalog))
	earned := 0
	for _, b := range catalog {
		v := badgeView{Badge: b}
		if at, ok := earnedAt[b.ID]; ok {
			v.Earned = true
			v.EarnedAt = at
			earned++
		}
		badges = append(badges, v)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": badges,
		"earned": earned,
		"total":  len(catalog),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.db.AllBadges()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": catalog,
	})
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	history, err := s.ledger.History(chi.URLParam(r, "userID"), listLimit(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": history,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := s.tracker.Stats(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if stats == nil {
		stats = &domain.UserStats{UserID: userID}
	}

	earnedCount, err := s.db.EarnedBadgeCount(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	catalog, err := s.db.AllBadges()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	counts, err := s.db.ActivityCounts(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":         stats,
		"badges_earned": earnedCount,
		"badges_total":  len(catalog),
		"activity":      counts,
	})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	pending, err := s.notifier.Pending(chi.URLParam(r, "userID"), listLimit(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notifier.MarkShown(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
