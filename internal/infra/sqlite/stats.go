package sqlite

import (
	"database/sql"
	"time"

	"github.com/serene-app/serene/internal/domain"
)

// ─── User Stats ─────────────────────────────────────────────────────────────

// GetUserStats retrieves the stats row for a user.
// Returns nil without error when the user has no row yet.
func (d *DB) GetUserStats(userID string) (*domain.UserStats, error) {
	row := d.db.QueryRow(
		`SELECT user_id, current_streak, longest_streak, total_points, last_activity_date
		 FROM user_stats WHERE user_id = ?`, userID,
	)

	var s domain.UserStats
	var lastDay string
	err := row.Scan(&s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.TotalPoints, &lastDay)
	if err == sql.ErrNoRows {
		return nil, nil // No stats yet — first activity creates the row
	}
	if err != nil {
		return nil, storeErr("get user stats", err)
	}

	s.LastActivityDate, err = domain.ParseDay(lastDay)
	if err != nil {
		return nil, storeErr("parse last_activity_date", err)
	}
	return &s, nil
}

// PutUserStats persists the full stats row. The single UPSERT statement
// keeps the write atomic per user.
func (d *DB) PutUserStats(s domain.UserStats) error {
	_, err := d.db.Exec(
		`INSERT INTO user_stats (user_id, current_streak, longest_streak, total_points, last_activity_date)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			current_streak=excluded.current_streak,
			longest_streak=excluded.longest_streak,
			total_points=excluded.total_points,
			last_activity_date=excluded.last_activity_date`,
		s.UserID, s.CurrentStreak, s.LongestStreak, s.TotalPoints,
		s.LastActivityDate.Format(domain.DayFormat),
	)
	if err != nil {
		return storeErr("put user stats", err)
	}
	return nil
}

// ─── Points Ledger ──────────────────────────────────────────────────────────

// AppendPointsEntry adds one grant to the per-user points ledger.
func (d *DB) AppendPointsEntry(e domain.PointsEntry) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO points_ledger (user_id, activity, amount, total, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.UserID, string(e.Activity), e.Amount, e.Total, e.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, storeErr("append points entry", err)
	}
	return result.LastInsertId()
}

// PointsEntries returns recent ledger entries for a user, newest first.
func (d *DB) PointsEntries(userID string, limit int) ([]domain.PointsEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, activity, amount, total, created_at
		 FROM points_ledger WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, storeErr("list points entries", err)
	}
	defer rows.Close()

	var entries []domain.PointsEntry
	for rows.Next() {
		var e domain.PointsEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Activity, &e.Amount, &e.Total, &createdAt); err != nil {
			return nil, storeErr("scan points entry", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
