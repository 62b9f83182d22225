// Package metrics provides Prometheus metrics for Serene — counters and
// histograms for activities, streaks, badge awards, and health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Activities ─────────────────────────────────────────────────────────────

// ActivitiesRecorded tracks qualifying activities by type.
var ActivitiesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "serene",
	Name:      "activities_recorded_total",
	Help:      "Total qualifying activities recorded.",
}, []string{"type"})

// PointsGranted tracks total points granted across all users.
var PointsGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "serene",
	Name:      "points_granted_total",
	Help:      "Total engagement points granted.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreaksStarted tracks first-activity stats rows created.
var StreaksStarted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "serene",
	Name:      "streaks_started_total",
	Help:      "Total streaks started (first qualifying activity).",
})

// StreaksContinued tracks consecutive-day streak extensions.
var StreaksContinued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "serene",
	Name:      "streaks_continued_total",
	Help:      "Total consecutive-day streak continuations.",
})

// StreaksReset tracks streaks broken by a gap day.
var StreaksReset = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "serene",
	Name:      "streaks_reset_total",
	Help:      "Total streaks reset after a gap.",
})

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgesAwarded tracks badge awards by requirement type.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "serene",
	Name:      "badges_awarded_total",
	Help:      "Total badges awarded.",
}, []string{"requirement"})

// EvaluateLatency tracks badge evaluation duration in seconds.
var EvaluateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "serene",
	Name:      "badge_evaluate_latency_seconds",
	Help:      "Badge evaluation duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "serene",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
