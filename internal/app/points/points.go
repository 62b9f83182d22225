// Package points implements the append-only points ledger. The stats
// row holds the authoritative total; the ledger is the audit trail that
// explains how a user got there.
package points

import (
	"fmt"
	"time"

	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/infra/sqlite"
)

// Ledger records point grants.
type Ledger struct {
	db *sqlite.DB
}

// NewLedger creates a points ledger.
func NewLedger(db *sqlite.DB) *Ledger {
	return &Ledger{db: db}
}

// Grant appends one grant for a user. The total is the running balance
// after the grant, as computed by the caller.
func (l *Ledger) Grant(userID string, activity domain.ActivityType, amount, total int) error {
	if amount <= 0 {
		return fmt.Errorf("grant amount must be positive, got %d", amount)
	}
	if total < amount {
		return fmt.Errorf("total %d cannot be below granted amount %d", total, amount)
	}

	_, err := l.db.AppendPointsEntry(domain.PointsEntry{
		UserID:    userID,
		Activity:  activity,
		Amount:    amount,
		Total:     total,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("append grant: %w", err)
	}
	return nil
}

// History returns recent grants for a user, newest first.
func (l *Ledger) History(userID string, limit int) ([]domain.PointsEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return l.db.PointsEntries(userID, limit)
}
