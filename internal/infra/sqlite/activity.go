package sqlite

import (
	"database/sql"
	"time"

	"github.com/serene-app/serene/internal/domain"
)

// ─── Activity Counters ──────────────────────────────────────────────────────

// ActivityCounts returns the lifetime activity totals for a user. These
// are the badge-eligibility inputs: unscoped by date, scoped by user.
func (d *DB) ActivityCounts(userID string) (domain.ActivityCounts, error) {
	var c domain.ActivityCounts

	queries := []struct {
		dest  *int
		query string
	}{
		{&c.MoodEntries, `SELECT COUNT(*) FROM mood_entries WHERE user_id = ?`},
		{&c.JournalEntries, `SELECT COUNT(*) FROM journal_entries WHERE user_id = ?`},
		{&c.TasksCompleted, `SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed = 1`},
		{&c.HabitCompletions, `SELECT COUNT(*) FROM habit_completions WHERE user_id = ?`},
	}
	for _, q := range queries {
		if err := d.db.QueryRow(q.query, userID).Scan(q.dest); err != nil {
			return c, storeErr("count activity", err)
		}
	}
	return c, nil
}

// ─── Mood Entries ───────────────────────────────────────────────────────────

// InsertMoodEntry creates a mood check-in row.
func (d *DB) InsertMoodEntry(e domain.MoodEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO mood_entries (id, user_id, mood, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Mood, e.Note, e.CreatedAt.Unix(),
	)
	if err != nil {
		return storeErr("insert mood entry", err)
	}
	return nil
}

// ListMoodEntries returns a user's mood entries, newest first.
func (d *DB) ListMoodEntries(userID string, limit int) ([]domain.MoodEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, mood, note, created_at FROM mood_entries
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, storeErr("list mood entries", err)
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		var e domain.MoodEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Note, &createdAt); err != nil {
			return nil, storeErr("scan mood entry", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── Journal Entries ────────────────────────────────────────────────────────

// InsertJournalEntry creates a journal row.
func (d *DB) InsertJournalEntry(e domain.JournalEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO journal_entries (id, user_id, title, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, e.Content, e.CreatedAt.Unix(),
	)
	if err != nil {
		return storeErr("insert journal entry", err)
	}
	return nil
}

// ListJournalEntries returns a user's journal entries, newest first.
func (d *DB) ListJournalEntries(userID string, limit int) ([]domain.JournalEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, title, content, created_at FROM journal_entries
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, storeErr("list journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &createdAt); err != nil {
			return nil, storeErr("scan journal entry", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── Tasks ──────────────────────────────────────────────────────────────────

// InsertTask creates a task row.
func (d *DB) InsertTask(t domain.Task) error {
	_, err := d.db.Exec(
		`INSERT INTO tasks (id, user_id, title, completed, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Completed, t.CreatedAt.Unix(), nullableUnix(t.CompletedAt),
	)
	if err != nil {
		return storeErr("insert task", err)
	}
	return nil
}

// GetTask retrieves a task by ID, or nil if absent.
func (d *DB) GetTask(id string) (*domain.Task, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, title, completed, created_at, completed_at FROM tasks WHERE id = ?`, id,
	)
	return scanTask(row)
}

// CompleteTask flips a task to completed. Returns false when the task was
// already completed (the WHERE clause makes repeat calls no-ops).
func (d *DB) CompleteTask(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`UPDATE tasks SET completed = 1, completed_at = ? WHERE id = ? AND completed = 0`,
		at.Unix(), id,
	)
	if err != nil {
		return false, storeErr("complete task", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListTasks returns a user's tasks, newest first.
func (d *DB) ListTasks(userID string, limit int) ([]domain.Task, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, title, completed, created_at, completed_at FROM tasks
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// InsertHabit creates a habit row.
func (d *DB) InsertHabit(h domain.Habit) error {
	_, err := d.db.Exec(
		`INSERT INTO habits (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		h.ID, h.UserID, h.Name, h.CreatedAt.Unix(),
	)
	if err != nil {
		return storeErr("insert habit", err)
	}
	return nil
}

// GetHabit retrieves a habit by ID, or nil if absent.
func (d *DB) GetHabit(id string) (*domain.Habit, error) {
	row := d.db.QueryRow(`SELECT id, user_id, name, created_at FROM habits WHERE id = ?`, id)

	var h domain.Habit
	var createdAt int64
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get habit", err)
	}
	h.CreatedAt = time.Unix(createdAt, 0)
	return &h, nil
}

// ListHabits returns a user's habits, oldest first.
func (d *DB) ListHabits(userID string) ([]domain.Habit, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, name, created_at FROM habits WHERE user_id = ? ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, storeErr("list habits", err)
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		var h domain.Habit
		var createdAt int64
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &createdAt); err != nil {
			return nil, storeErr("scan habit", err)
		}
		h.CreatedAt = time.Unix(createdAt, 0)
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// InsertHabitCompletion records a habit as done for one calendar day.
// Returns false when that day was already recorded — the UNIQUE
// (habit_id, day) constraint makes the insert idempotent.
func (d *DB) InsertHabitCompletion(c domain.HabitCompletion) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO habit_completions (id, habit_id, user_id, day, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, c.UserID, c.Day.Format(domain.DayFormat), c.CompletedAt.Unix(),
	)
	if err != nil {
		return false, storeErr("insert habit completion", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListHabitCompletions returns completions for one habit, newest day first.
func (d *DB) ListHabitCompletions(habitID string, limit int) ([]domain.HabitCompletion, error) {
	rows, err := d.db.Query(
		`SELECT id, habit_id, user_id, day, completed_at FROM habit_completions
		 WHERE habit_id = ? ORDER BY day DESC LIMIT ?`,
		habitID, limit,
	)
	if err != nil {
		return nil, storeErr("list habit completions", err)
	}
	defer rows.Close()

	var completions []domain.HabitCompletion
	for rows.Next() {
		var c domain.HabitCompletion
		var day string
		var completedAt int64
		if err := rows.Scan(&c.ID, &c.HabitID, &c.UserID, &day, &completedAt); err != nil {
			return nil, storeErr("scan habit completion", err)
		}
		if c.Day, err = domain.ParseDay(day); err != nil {
			return nil, storeErr("parse completion day", err)
		}
		c.CompletedAt = time.Unix(completedAt, 0)
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// ─── Chat Messages ──────────────────────────────────────────────────────────

// InsertChatMessage creates a chat message row.
func (d *DB) InsertChatMessage(m domain.ChatMessage) error {
	_, err := d.db.Exec(
		`INSERT INTO chat_messages (id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.UserID, m.Content, m.CreatedAt.Unix(),
	)
	if err != nil {
		return storeErr("insert chat message", err)
	}
	return nil
}

// ListChatMessages returns the most recent room messages, newest first.
func (d *DB) ListChatMessages(limit int) ([]domain.ChatMessage, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, content, created_at FROM chat_messages
		 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, storeErr("list chat messages", err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.UserID, &m.Content, &createdAt); err != nil {
			return nil, storeErr("scan chat message", err)
		}
		m.CreatedAt = time.Unix(createdAt, 0)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var createdAt int64
	var completedAt sql.NullInt64

	err := s.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &createdAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, storeErr("scan task", err)
	}

	t.CreatedAt = time.Unix(createdAt, 0)
	if completedAt.Valid {
		t.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return &t, nil
}
