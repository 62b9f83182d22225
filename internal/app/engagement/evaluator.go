package engagement

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/infra/metrics"
)

// Store is the slice of the persistent store the evaluator reads and
// writes: stats, catalog, counters, and the award ledger. *sqlite.DB
// satisfies it.
type Store interface {
	domain.StatsStore
	domain.BadgeCatalog
	domain.AwardLedger
	domain.ActivityCounterSource
}

// BadgeEvaluator decides which not-yet-earned badges a user now qualifies
// for and emits exactly one award per qualifying badge.
//
// Awards are idempotent under concurrency: the write is an
// insert-if-absent against the (user_id, badge_id) uniqueness invariant,
// so racing evaluators produce one winner and benign no-ops.
type BadgeEvaluator struct {
	store    Store
	notifier *Notifier
	now      func() time.Time
}

// NewBadgeEvaluator creates a badge evaluator. The notifier may be nil.
func NewBadgeEvaluator(store Store, notifier *Notifier) *BadgeEvaluator {
	return &BadgeEvaluator{store: store, notifier: notifier, now: time.Now}
}

// counterFor maps each known requirement type to the snapshot value it
// gates on. New badge kinds are added by extending this table, not by
// changing control flow. Catalog rows with a type missing here are
// skipped — the catalog may evolve ahead of the evaluator.
var counterFor = map[domain.RequirementType]func(domain.ActivitySnapshot) int{
	domain.ReqMoodEntries:      func(s domain.ActivitySnapshot) int { return s.Counts.MoodEntries },
	domain.ReqJournalEntries:   func(s domain.ActivitySnapshot) int { return s.Counts.JournalEntries },
	domain.ReqStreak:           func(s domain.ActivitySnapshot) int { return s.Stats.CurrentStreak },
	domain.ReqTasksCompleted:   func(s domain.ActivitySnapshot) int { return s.Counts.TasksCompleted },
	domain.ReqHabitCompletions: func(s domain.ActivitySnapshot) int { return s.Counts.HabitCompletions },
}

// Evaluate checks every unearned catalog badge against the user's current
// activity snapshot and returns the IDs newly awarded in this call.
// Calling it again with no intervening activity awards nothing.
func (e *BadgeEvaluator) Evaluate(userID string) ([]string, error) {
	timer := prometheus.NewTimer(metrics.EvaluateLatency)
	defer timer.ObserveDuration()

	stats, err := e.store.GetUserStats(userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, nil // No activity yet — nothing can qualify
	}

	snapshot, err := e.Snapshot(*stats)
	if err != nil {
		return nil, err
	}

	catalog, err := e.store.AllBadges()
	if err != nil {
		return nil, err
	}
	earned, err := e.store.EarnedBadgeIDs(userID)
	if err != nil {
		return nil, err
	}

	var awarded []string
	for _, badge := range catalog {
		if earned[badge.ID] {
			continue
		}
		counter, ok := counterFor[badge.RequirementType]
		if !ok {
			continue // Unknown requirement type — skip, never award
		}
		if counter(snapshot) < badge.RequirementValue {
			continue
		}

		newly, err := e.store.AwardBadge(userID, badge.ID, e.now())
		if err != nil {
			return awarded, err
		}
		if !newly {
			continue // Lost the race — another evaluator already awarded it
		}

		awarded = append(awarded, badge.ID)
		metrics.BadgesAwarded.WithLabelValues(string(badge.RequirementType)).Inc()
		if e.notifier != nil {
			e.notifier.BadgeEarned(userID, badge)
		}
	}
	return awarded, nil
}

// Snapshot assembles the fixed predicate input for a user: the given
// stats row plus their lifetime activity counters.
func (e *BadgeEvaluator) Snapshot(stats domain.UserStats) (domain.ActivitySnapshot, error) {
	counts, err := e.store.ActivityCounts(stats.UserID)
	if err != nil {
		return domain.ActivitySnapshot{}, err
	}
	return domain.ActivitySnapshot{Stats: stats, Counts: counts}, nil
}
