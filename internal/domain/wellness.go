package domain

import "time"

// ─── Feature Screen Rows ────────────────────────────────────────────────────
// The wellness screens are record-and-display views; these are the records
// they read and write. Producing them is the screens' responsibility — the
// engagement engine only ever counts them.

// MoodEntry is one mood check-in.
type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalEntry is one journal record. Voice entries arrive already
// transcribed; the engine stores text only.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a to-do item. Completing it — not creating it — is the
// qualifying activity.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
}

// Habit is a recurring practice the user tracks daily.
type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitCompletion marks a habit done on one calendar day.
// At most one row per (HabitID, Day).
type HabitCompletion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	UserID      string    `json:"user_id"`
	Day         time.Time `json:"day"` // calendar day
	CompletedAt time.Time `json:"completed_at"`
}

// ChatMessage is one message in the shared support room. Posting is not
// a qualifying activity.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
