package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrStoreUnavailable wraps transient store I/O failures. Surfaced to
	// the caller as-is; the engine never retries internally.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvariantViolation means longest_streak < current_streak survived
	// an update. A correct StreakTracker can never produce it; treat as a
	// fatal programming error.
	ErrInvariantViolation = errors.New("stats invariant violated: longest_streak < current_streak")

	// Catalog errors
	ErrBadgeNotFound = errors.New("badge not found")

	// Feature row errors
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskCompleted = errors.New("task already completed")
	ErrHabitNotFound = errors.New("habit not found")
	ErrEmptyContent  = errors.New("content must not be empty")
	ErrUnknownMood   = errors.New("unknown mood label")
	ErrMissingUserID = errors.New("user id required")
)
