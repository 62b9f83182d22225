// Package engagement implements the Serene engagement engine: it turns a
// user's raw activity records into a running streak, a point total, and a
// set of earned badges.
package engagement

import (
	"log"
	"sync"
	"time"

	"github.com/serene-app/serene/internal/app/points"
	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/infra/metrics"
	"github.com/serene-app/serene/internal/infra/sqlite"
)

// Config controls the point policy of the tracker.
type Config struct {
	// PointsPerActivity is granted for each qualifying activity.
	PointsPerActivity int

	// SameDayPoints decides whether a repeat activity on an already-counted
	// day still earns points. The streak never advances twice in one day
	// either way.
	SameDayPoints bool
}

// DefaultConfig matches the original app: every action earns 10 points,
// including same-day repeats.
func DefaultConfig() Config {
	return Config{PointsPerActivity: 10, SameDayPoints: true}
}

// Evaluator is triggered after each successful stats write.
type Evaluator interface {
	Evaluate(userID string) ([]string, error)
}

// StreakTracker owns the per-user stats rows. On each qualifying activity
// it advances or resets the current streak, updates the longest streak and
// point total, and stamps the activity date.
//
// Updates are serialized per user: a keyed mutex guards the
// read-modify-write, and the persist itself is a single UPSERT. Two
// sessions reporting activity for the same user on the same day therefore
// cannot lose an update.
type StreakTracker struct {
	db        *sqlite.DB
	cfg       Config
	ledger    *points.Ledger
	evaluator Evaluator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStreakTracker creates a streak tracker. The evaluator may be nil; if
// set, it runs after every successful stats write.
func NewStreakTracker(db *sqlite.DB, cfg Config, ledger *points.Ledger, evaluator Evaluator) *StreakTracker {
	if cfg.PointsPerActivity <= 0 {
		cfg.PointsPerActivity = DefaultConfig().PointsPerActivity
	}
	return &StreakTracker{
		db:        db,
		cfg:       cfg,
		ledger:    ledger,
		evaluator: evaluator,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Stats loads the current stats row for a user, or nil if none exists.
func (t *StreakTracker) Stats(userID string) (*domain.UserStats, error) {
	return t.db.GetUserStats(userID)
}

// RecordActivity reports one qualifying activity for a user on the given
// calendar day and returns the updated stats row.
//
// First activity ever: streak = longest = 1. Day after the last activity:
// streak extends. Same day again: streak unchanged. Any other gap: streak
// resets to 1. The longest streak and point total only ever grow.
//
// On success the badge evaluator runs as a side effect; its failures are
// logged, not surfaced, since the stats update has already committed.
func (t *StreakTracker) RecordActivity(userID string, today time.Time, activity domain.ActivityType) (domain.UserStats, error) {
	if userID == "" {
		return domain.UserStats{}, domain.ErrMissingUserID
	}
	day := domain.Day(today)

	lock := t.userLock(userID)
	lock.Lock()
	stats, err := t.record(userID, day, activity)
	lock.Unlock()
	if err != nil {
		return domain.UserStats{}, err
	}

	metrics.ActivitiesRecorded.WithLabelValues(string(activity)).Inc()

	if t.evaluator != nil {
		if _, err := t.evaluator.Evaluate(userID); err != nil {
			log.Printf("[engagement] badge evaluation for user %s failed: %v", userID, err)
		}
	}
	return stats, nil
}

// record performs the serialized read-modify-write. Caller holds the
// user's lock.
func (t *StreakTracker) record(userID string, day time.Time, activity domain.ActivityType) (domain.UserStats, error) {
	existing, err := t.db.GetUserStats(userID)
	if err != nil {
		return domain.UserStats{}, err
	}

	if existing == nil {
		// First qualifying activity ever — create and return.
		stats := domain.UserStats{
			UserID:           userID,
			CurrentStreak:    1,
			LongestStreak:    1,
			TotalPoints:      t.cfg.PointsPerActivity,
			LastActivityDate: day,
		}
		if err := t.db.PutUserStats(stats); err != nil {
			return domain.UserStats{}, err
		}
		metrics.StreaksStarted.Inc()
		t.grantPoints(userID, activity, t.cfg.PointsPerActivity, stats.TotalPoints)
		return stats, nil
	}

	stats := *existing
	yesterday := day.AddDate(0, 0, -1)
	sameDay := false

	switch {
	case stats.LastActivityDate.Equal(yesterday):
		// Consecutive day — extend streak
		stats.CurrentStreak++
		metrics.StreaksContinued.Inc()
	case stats.LastActivityDate.Equal(day):
		// Already counted today — streak unchanged
		sameDay = true
	default:
		// Gap of 2+ days (or a clock anomaly) — streak resets
		stats.CurrentStreak = 1
		metrics.StreaksReset.Inc()
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	if stats.LongestStreak < stats.CurrentStreak {
		return domain.UserStats{}, domain.ErrInvariantViolation
	}

	granted := t.cfg.PointsPerActivity
	if sameDay && !t.cfg.SameDayPoints {
		// Policy says same-day repeats are a no-op; nothing changed, so
		// skip the write entirely.
		return stats, nil
	}

	stats.TotalPoints += granted
	stats.LastActivityDate = day

	if err := t.db.PutUserStats(stats); err != nil {
		return domain.UserStats{}, err
	}
	t.grantPoints(userID, activity, granted, stats.TotalPoints)
	return stats, nil
}

// grantPoints appends to the audit ledger. The stats row is authoritative;
// a ledger failure is logged, never surfaced.
func (t *StreakTracker) grantPoints(userID string, activity domain.ActivityType, amount, total int) {
	metrics.PointsGranted.Add(float64(amount))
	if t.ledger == nil {
		return
	}
	if err := t.ledger.Grant(userID, activity, amount, total); err != nil {
		log.Printf("[engagement] points ledger append for user %s failed: %v", userID, err)
	}
}

// userLock returns the mutex serializing updates for one user.
func (t *StreakTracker) userLock(userID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[userID] = l
	}
	return l
}
