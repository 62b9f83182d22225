// Package sqlite provides SQLite-based persistent storage for Serene.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/serene-app/serene/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/serene.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "serene.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Engagement: one stats row per user, upsert semantics.
		`CREATE TABLE IF NOT EXISTS user_stats (
			user_id            TEXT PRIMARY KEY,
			current_streak     INTEGER NOT NULL DEFAULT 0,
			longest_streak     INTEGER NOT NULL DEFAULT 0,
			total_points       INTEGER NOT NULL DEFAULT 0,
			last_activity_date TEXT NOT NULL
		)`,

		// Badge catalog: static reference data, seeded out-of-band.
		`CREATE TABLE IF NOT EXISTS badges (
			id                TEXT PRIMARY KEY,
			name              TEXT NOT NULL,
			description       TEXT NOT NULL DEFAULT '',
			icon              TEXT NOT NULL DEFAULT '',
			requirement_type  TEXT NOT NULL,
			requirement_value INTEGER NOT NULL
		)`,

		// Award ledger: the composite key is what makes awards at-most-once.
		`CREATE TABLE IF NOT EXISTS user_badges (
			user_id   TEXT NOT NULL,
			badge_id  TEXT NOT NULL,
			earned_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, badge_id)
		)`,

		// Per-user points ledger (audit trail behind user_stats.total_points).
		`CREATE TABLE IF NOT EXISTS points_ledger (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			activity   TEXT NOT NULL,
			amount     INTEGER NOT NULL,
			total      INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_points_user ON points_ledger(user_id, id)`,

		// Feature screen rows. The engine only ever counts these.
		`CREATE TABLE IF NOT EXISTS mood_entries (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			mood       TEXT NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_user ON mood_entries(user_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS journal_entries (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			title      TEXT NOT NULL DEFAULT '',
			content    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries(user_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			title        TEXT NOT NULL,
			completed    BOOLEAN NOT NULL DEFAULT 0,
			created_at   INTEGER NOT NULL,
			completed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS habits (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id)`,

		// One completion per habit per calendar day.
		`CREATE TABLE IF NOT EXISTS habit_completions (
			id           TEXT PRIMARY KEY,
			habit_id     TEXT NOT NULL,
			user_id      TEXT NOT NULL,
			day          TEXT NOT NULL,
			completed_at INTEGER NOT NULL,
			UNIQUE (habit_id, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_completions_user ON habit_completions(user_id)`,

		`CREATE TABLE IF NOT EXISTS chat_messages (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_created ON chat_messages(created_at)`,

		// Notification log (daily cap + quiet hours enforced in the app layer).
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_user ON notifications(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// storeErr wraps a store failure so callers can match
// domain.ErrStoreUnavailable with errors.Is.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
