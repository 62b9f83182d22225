package sqlite

import (
	"database/sql"
	"time"

	"github.com/serene-app/serene/internal/domain"
)

// ─── Badge Catalog ──────────────────────────────────────────────────────────

// UpsertBadge inserts or updates a catalog entry. Used only by seeding;
// the engine itself never mutates the catalog.
func (d *DB) UpsertBadge(b domain.Badge) error {
	_, err := d.db.Exec(
		`INSERT INTO badges (id, name, description, icon, requirement_type, requirement_value)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			icon=excluded.icon,
			requirement_type=excluded.requirement_type,
			requirement_value=excluded.requirement_value`,
		b.ID, b.Name, b.Description, b.Icon, string(b.RequirementType), b.RequirementValue,
	)
	if err != nil {
		return storeErr("upsert badge", err)
	}
	return nil
}

// AllBadges returns the full badge catalog.
func (d *DB) AllBadges() ([]domain.Badge, error) {
	rows, err := d.db.Query(
		`SELECT id, name, description, icon, requirement_type, requirement_value
		 FROM badges ORDER BY requirement_type, requirement_value`,
	)
	if err != nil {
		return nil, storeErr("list badges", err)
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		b, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, *b)
	}
	return badges, rows.Err()
}

// GetBadge retrieves a single catalog entry, or nil if absent.
func (d *DB) GetBadge(id string) (*domain.Badge, error) {
	row := d.db.QueryRow(
		`SELECT id, name, description, icon, requirement_type, requirement_value
		 FROM badges WHERE id = ?`, id,
	)
	return scanBadge(row)
}

// ─── Award Ledger ───────────────────────────────────────────────────────────

// AwardBadge records a badge as earned. The INSERT OR IGNORE against the
// (user_id, badge_id) primary key makes the award at-most-once: returns
// true only for the caller that created the row.
func (d *DB) AwardBadge(userID, badgeID string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO user_badges (user_id, badge_id, earned_at) VALUES (?, ?, ?)`,
		userID, badgeID, at.Unix(),
	)
	if err != nil {
		return false, storeErr("award badge", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly awarded
}

// EarnedBadgeIDs returns the set of badge IDs a user has earned.
func (d *DB) EarnedBadgeIDs(userID string) (map[string]bool, error) {
	rows, err := d.db.Query(`SELECT badge_id FROM user_badges WHERE user_id = ?`, userID)
	if err != nil {
		return nil, storeErr("list earned badge ids", err)
	}
	defer rows.Close()

	earned := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan earned badge id", err)
		}
		earned[id] = true
	}
	return earned, rows.Err()
}

// ListUserBadges returns a user's award rows, newest first.
func (d *DB) ListUserBadges(userID string) ([]domain.UserBadge, error) {
	rows, err := d.db.Query(
		`SELECT user_id, badge_id, earned_at FROM user_badges
		 WHERE user_id = ? ORDER BY earned_at DESC, badge_id`,
		userID,
	)
	if err != nil {
		return nil, storeErr("list user badges", err)
	}
	defer rows.Close()

	var awards []domain.UserBadge
	for rows.Next() {
		var ub domain.UserBadge
		var earnedAt int64
		if err := rows.Scan(&ub.UserID, &ub.BadgeID, &earnedAt); err != nil {
			return nil, storeErr("scan user badge", err)
		}
		ub.EarnedAt = time.Unix(earnedAt, 0)
		awards = append(awards, ub)
	}
	return awards, rows.Err()
}

// EarnedBadgeCount returns how many badges a user has earned.
func (d *DB) EarnedBadgeCount(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM user_badges WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, storeErr("count user badges", err)
	}
	return count, nil
}

func scanBadge(s scanner) (*domain.Badge, error) {
	var b domain.Badge
	var reqType string
	err := s.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &reqType, &b.RequirementValue)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, storeErr("scan badge", err)
	}
	b.RequirementType = domain.RequirementType(reqType)
	return &b, nil
}
