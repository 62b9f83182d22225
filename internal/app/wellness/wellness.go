// Package wellness implements the feature screens' record services:
// moods, journals, tasks, habits, and the support chat. Each qualifying
// write reports itself to the engagement engine; chat does not qualify.
package wellness

import (
	"time"

	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/infra/sqlite"
)

// ActivityRecorder receives one report per qualifying activity.
// *engagement.StreakTracker satisfies it.
type ActivityRecorder interface {
	RecordActivity(userID string, today time.Time, activity domain.ActivityType) (domain.UserStats, error)
}

// Service owns the wellness records. The recorder may be nil, which
// turns activity reporting off (used by tests exercising records alone).
type Service struct {
	db       *sqlite.DB
	recorder ActivityRecorder
}

// NewService creates a wellness service.
func NewService(db *sqlite.DB, recorder ActivityRecorder) *Service {
	return &Service{db: db, recorder: recorder}
}

// report forwards one qualifying activity to the engagement engine.
func (s *Service) report(userID string, activity domain.ActivityType) (*domain.UserStats, error) {
	if s.recorder == nil {
		return nil, nil
	}
	stats, err := s.recorder.RecordActivity(userID, time.Now(), activity)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
