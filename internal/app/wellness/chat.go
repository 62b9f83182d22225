package wellness

import (
	"time"

	"github.com/google/uuid"

	"github.com/serene-app/serene/internal/domain"
)

// PostChat adds a message to the shared support room. Chat is social,
// not a wellness practice: it never reports a qualifying activity.
func (s *Service) PostChat(userID, content string) (domain.ChatMessage, error) {
	if userID == "" {
		return domain.ChatMessage{}, domain.ErrMissingUserID
	}
	if content == "" {
		return domain.ChatMessage{}, domain.ErrEmptyContent
	}

	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertChatMessage(msg); err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

// ChatHistory returns the most recent room messages, newest first.
func (s *Service) ChatHistory(limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.db.ListChatMessages(limit)
}
