package engagement

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/infra/sqlite"
)

// Notifier creates user-facing notifications under a restraint policy:
// a per-user daily cap and quiet hours. Suppressed notifications are
// dropped, never queued — a wellness app should not nag.
type Notifier struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
}

// NewNotifier creates a notifier with the default policy.
func NewNotifier(db *sqlite.DB) *Notifier {
	return &Notifier{db: db, policy: domain.DefaultNotificationPolicy()}
}

// NewNotifierWithPolicy creates a notifier with a custom policy.
func NewNotifierWithPolicy(db *sqlite.DB, policy domain.NotificationPolicy) *Notifier {
	return &Notifier{db: db, policy: policy}
}

// BadgeEarned records a badge-award notification for a user. Failures
// are logged and swallowed: notifications are best-effort decoration on
// top of an award that already happened.
func (n *Notifier) BadgeEarned(userID string, badge domain.Badge) {
	_, err := n.Create(domain.Notification{
		UserID: userID,
		Type:   domain.NotifyBadgeEarned,
		Title:  fmt.Sprintf("Badge earned: %s %s", badge.Icon, badge.Name),
		Body:   badge.Description,
	})
	if err != nil {
		log.Printf("[engagement] notification for user %s failed: %v", userID, err)
	}
}

// Create creates a notification if policy allows it. Policy is checked
// against notif.CreatedAt so callers control the reference clock; a zero
// CreatedAt means now.
// Returns the notification ID (0 if suppressed by policy) and any error.
func (n *Notifier) Create(notif domain.Notification) (int64, error) {
	at := notif.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}

	// Check the per-user daily limit
	todayCount, err := n.db.NotificationCountSince(notif.UserID, domain.Day(at))
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= n.policy.MaxPerDay {
		return 0, nil // Suppressed — daily limit reached
	}

	// Check quiet hours
	if n.isQuietHour(at) {
		return 0, nil // Suppressed — quiet hours
	}

	notif.CreatedAt = at
	notif.Shown = false

	id, err := n.db.InsertNotification(notif)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// Pending returns a user's unshown notifications.
func (n *Notifier) Pending(userID string, limit int) ([]domain.Notification, error) {
	return n.db.ListPendingNotifications(userID, limit)
}

// MarkShown marks a notification as shown.
func (n *Notifier) MarkShown(id int64) error {
	return n.db.MarkNotificationShown(id)
}

// Policy returns the current notification policy.
func (n *Notifier) Policy() domain.NotificationPolicy {
	return n.policy
}

// isQuietHour returns true if the given time falls within quiet hours.
func (n *Notifier) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(n.policy.QuietStart)
	endHour, endMin := parseHHMM(n.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	// Same day range
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
