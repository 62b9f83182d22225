package wellness

import (
	"time"

	"github.com/google/uuid"

	"github.com/serene-app/serene/internal/domain"
)

// WriteJournal records one journal entry and reports it as a qualifying
// activity. The title is optional; the content is not.
func (s *Service) WriteJournal(userID, title, content string) (domain.JournalEntry, error) {
	if userID == "" {
		return domain.JournalEntry{}, domain.ErrMissingUserID
	}
	if content == "" {
		return domain.JournalEntry{}, domain.ErrEmptyContent
	}

	entry := domain.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertJournalEntry(entry); err != nil {
		return domain.JournalEntry{}, err
	}
	if _, err := s.report(userID, domain.ActivityJournal); err != nil {
		return entry, err
	}
	return entry, nil
}

// Journals returns a user's recent journal entries, newest first.
func (s *Service) Journals(userID string, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListJournalEntries(userID, limit)
}
