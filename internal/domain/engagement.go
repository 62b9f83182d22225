// Package domain holds the pure types of the Serene engagement engine.
// The engine turns raw activity records into a running streak, a point
// total, and earned badges. No infrastructure dependencies live here.
package domain

import "time"

// ─── Calendar Days ──────────────────────────────────────────────────────────
// Streak arithmetic works on calendar days, never instants. A day is a
// time.Time pinned to midnight UTC; timezone normalization is the caller's
// responsibility before a timestamp reaches the engine.

// DayFormat is the storage form of a calendar day.
const DayFormat = "2006-01-02"

// Day truncates t to its calendar day (midnight UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a "YYYY-MM-DD" string into a calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// ─── Stats Types ────────────────────────────────────────────────────────────

// UserStats is the per-user engagement record, one row per user.
// Invariant: LongestStreak >= CurrentStreak after every update.
type UserStats struct {
	UserID           string    `json:"user_id"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	TotalPoints      int       `json:"total_points"`
	LastActivityDate time.Time `json:"last_activity_date"` // calendar day
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// RequirementType declares which activity counter a badge threshold
// applies to. The set is open: catalogs may carry types this build does
// not know, and the evaluator skips those rather than erroring.
type RequirementType string

const (
	ReqMoodEntries      RequirementType = "mood_entries"
	ReqJournalEntries   RequirementType = "journal_entries"
	ReqStreak           RequirementType = "streak"
	ReqTasksCompleted   RequirementType = "tasks_completed"
	ReqHabitCompletions RequirementType = "habit_completions"
)

// Badge is a catalog entry: display metadata plus a single
// threshold requirement. Catalog rows are seeded out-of-band and never
// mutated by the engine.
type Badge struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	RequirementType  RequirementType `json:"requirement_type"`
	RequirementValue int             `json:"requirement_value"`
}

// UserBadge is one row of the append-only award ledger.
// At most one row per (UserID, BadgeID) pair — a badge is earned once.
type UserBadge struct {
	UserID   string    `json:"user_id"`
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}

// ─── Activity Types ─────────────────────────────────────────────────────────

// ActivityType tags a qualifying activity for the points ledger and metrics.
type ActivityType string

const (
	ActivityMood    ActivityType = "mood"
	ActivityJournal ActivityType = "journal"
	ActivityTask    ActivityType = "task"
	ActivityHabit   ActivityType = "habit"
)

// ActivityCounts holds the lifetime activity totals for one user,
// the badge-eligibility inputs.
type ActivityCounts struct {
	MoodEntries      int `json:"mood_entries"`
	JournalEntries   int `json:"journal_entries"`
	TasksCompleted   int `json:"tasks_completed"`
	HabitCompletions int `json:"habit_completions"`
}

// ActivitySnapshot is the fixed input fed to badge predicates: the
// user's stats row plus their activity counters, read at one point in time.
type ActivitySnapshot struct {
	Stats  UserStats      `json:"stats"`
	Counts ActivityCounts `json:"counts"`
}

// ─── Points Ledger Types ────────────────────────────────────────────────────

// PointsEntry is one append-only grant in the per-user points ledger.
// Total mirrors UserStats.TotalPoints after the grant was applied.
type PointsEntry struct {
	ID        int64        `json:"id"`
	UserID    string       `json:"user_id"`
	Activity  ActivityType `json:"activity"`
	Amount    int          `json:"amount"`
	Total     int          `json:"total"`
	CreatedAt time.Time    `json:"created_at"`
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyBadgeEarned   NotificationType = "badge_earned"
	NotifyStreakReached NotificationType = "streak_reached"
)

// Notification is a user-facing message.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs how often notifications are created.
// Quiet hours and the daily cap suppress, never queue.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy returns the default policy.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  3,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
