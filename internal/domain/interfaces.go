package domain

import "time"

// ─── Store Interfaces ───────────────────────────────────────────────────────
// These interfaces define the boundary between the engagement engine and
// the persistent store. Infrastructure implements them; the application
// layer depends on them.

// StatsStore owns the per-user stats rows.
type StatsStore interface {
	// GetUserStats returns the stats row for a user, or nil if none exists.
	GetUserStats(userID string) (*UserStats, error)

	// PutUserStats persists the full stats row (upsert, atomic per user).
	PutUserStats(stats UserStats) error
}

// BadgeCatalog reads the badge definitions.
type BadgeCatalog interface {
	// AllBadges returns every catalog entry.
	AllBadges() ([]Badge, error)
}

// AwardLedger owns the append-only user_badges ledger.
type AwardLedger interface {
	// EarnedBadgeIDs returns the set of badge IDs already earned by a user.
	EarnedBadgeIDs(userID string) (map[string]bool, error)

	// AwardBadge inserts an award row if absent. Returns true only for the
	// caller that created the row; a lost race is a no-op, not an error.
	AwardBadge(userID, badgeID string, at time.Time) (bool, error)
}

// ActivityCounterSource supplies the lifetime activity counters used as
// badge-eligibility inputs.
type ActivityCounterSource interface {
	ActivityCounts(userID string) (ActivityCounts, error)
}
