package wellness

import (
	"time"

	"github.com/google/uuid"

	"github.com/serene-app/serene/internal/domain"
)

// knownMoods is the closed set of mood labels the check-in screen offers.
var knownMoods = map[string]bool{
	"happy":   true,
	"calm":    true,
	"neutral": true,
	"sad":     true,
	"anxious": true,
	"angry":   true,
}

// LogMood records one mood check-in and reports it as a qualifying
// activity. The note is optional.
func (s *Service) LogMood(userID, mood, note string) (domain.MoodEntry, error) {
	if userID == "" {
		return domain.MoodEntry{}, domain.ErrMissingUserID
	}
	if !knownMoods[mood] {
		return domain.MoodEntry{}, domain.ErrUnknownMood
	}

	entry := domain.MoodEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      mood,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertMoodEntry(entry); err != nil {
		return domain.MoodEntry{}, err
	}
	if _, err := s.report(userID, domain.ActivityMood); err != nil {
		return entry, err
	}
	return entry, nil
}

// Moods returns a user's recent mood entries, newest first.
func (s *Service) Moods(userID string, limit int) ([]domain.MoodEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListMoodEntries(userID, limit)
}
