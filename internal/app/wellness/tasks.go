package wellness

import (
	"time"

	"github.com/google/uuid"

	"github.com/serene-app/serene/internal/domain"
)

// CreateTask adds a to-do item. Creation is not a qualifying activity —
// only completing the task counts.
func (s *Service) CreateTask(userID, title string) (domain.Task, error) {
	if userID == "" {
		return domain.Task{}, domain.ErrMissingUserID
	}
	if title == "" {
		return domain.Task{}, domain.ErrEmptyContent
	}

	task := domain.Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertTask(task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// CompleteTask marks a task done and reports the qualifying activity.
// Completing an already-completed task is an error, not a second grant.
func (s *Service) CompleteTask(userID, taskID string) (domain.Task, error) {
	task, err := s.db.GetTask(taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if task == nil || task.UserID != userID {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	now := time.Now()
	flipped, err := s.db.CompleteTask(taskID, now)
	if err != nil {
		return domain.Task{}, err
	}
	if !flipped {
		return domain.Task{}, domain.ErrTaskCompleted
	}

	task.Completed = true
	task.CompletedAt = now
	if _, err := s.report(userID, domain.ActivityTask); err != nil {
		return *task, err
	}
	return *task, nil
}

// Tasks returns a user's tasks, newest first.
func (s *Service) Tasks(userID string, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListTasks(userID, limit)
}
