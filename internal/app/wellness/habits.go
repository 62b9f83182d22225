package wellness

import (
	"time"

	"github.com/google/uuid"

	"github.com/serene-app/serene/internal/domain"
)

// CreateHabit adds a recurring practice to track.
func (s *Service) CreateHabit(userID, name string) (domain.Habit, error) {
	if userID == "" {
		return domain.Habit{}, domain.ErrMissingUserID
	}
	if name == "" {
		return domain.Habit{}, domain.ErrEmptyContent
	}

	habit := domain.Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertHabit(habit); err != nil {
		return domain.Habit{}, err
	}
	return habit, nil
}

// CompleteHabit checks a habit off for today. One completion per habit
// per calendar day: repeats are no-ops and grant nothing.
func (s *Service) CompleteHabit(userID, habitID string) (domain.HabitCompletion, error) {
	habit, err := s.db.GetHabit(habitID)
	if err != nil {
		return domain.HabitCompletion{}, err
	}
	if habit == nil || habit.UserID != userID {
		return domain.HabitCompletion{}, domain.ErrHabitNotFound
	}

	now := time.Now()
	completion := domain.HabitCompletion{
		ID:          uuid.NewString(),
		HabitID:     habitID,
		UserID:      userID,
		Day:         domain.Day(now),
		CompletedAt: now,
	}
	newly, err := s.db.InsertHabitCompletion(completion)
	if err != nil {
		return domain.HabitCompletion{}, err
	}
	if !newly {
		// Already checked off today — return the existing day, no grant
		return completion, nil
	}

	if _, err := s.report(userID, domain.ActivityHabit); err != nil {
		return completion, err
	}
	return completion, nil
}

// Habits returns a user's habits, oldest first.
func (s *Service) Habits(userID string) ([]domain.Habit, error) {
	return s.db.ListHabits(userID)
}

// HabitHistory returns recent completions for one habit, newest day first.
func (s *Service) HabitHistory(habitID string, limit int) ([]domain.HabitCompletion, error) {
	if limit <= 0 {
		limit = 30
	}
	return s.db.ListHabitCompletions(habitID, limit)
}
