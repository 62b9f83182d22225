package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ─── Mood (/api/users/{userID}/mood) ────────────────────────────────────────

type logMoodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

func (s *Server) handleLogMood(w http.ResponseWriter, r *http.Request) {
	var req logMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.wellness.LogMood(chi.URLParam(r, "userID"), req.Mood, req.Note)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListMoods(w http.ResponseWriter, r *http.Request) {
	entries, err := s.wellness.Moods(chi.URLParam(r, "userID"), listLimit(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// ─── Journal (/api/users/{userID}/journal) ──────────────────────────────────

type writeJournalRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

func (s *Server) handleWriteJournal(w http.ResponseWriter, r *http.Request) {
	var req writeJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.wellness.WriteJournal(chi.URLParam(r, "userID"), req.Title, req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListJournals(w http.ResponseWriter, r *http.Request) {
	entries, err := s.wellness.Journals(chi.URLParam(r, "userID"), listLimit(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// ─── Tasks (/api/users/{userID}/tasks) ──────────────────────────────────────

type createTaskRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.wellness.CreateTask(chi.URLParam(r, "userID"), req.Title)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.wellness.Tasks(chi.URLParam(r, "userID"), listLimit(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.wellness.CompleteTask(chi.URLParam(r, "userID"), chi.URLParam(r, "taskID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ─── Habits (/api/users/{userID}/habits) ────────────────────────────────────

type createHabitRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := s.wellness.CreateHabit(chi.URLParam(r, "userID"), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.wellness.Habits(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"habits": habits,
	})
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request) {
	completion, err := s.wellness.CompleteHabit(chi.URLParam(r, "userID"), chi.URLParam(r, "habitID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completion)
}

func (s *Server) handleHabitHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.wellness.HabitHistory(chi.URLParam(r, "habitID"), listLimit(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"completions": history,
	})
}

// ─── Chat (/api/users/{userID}/chat) ────────────────────────────────────────

type postChatRequest struct {
	Content string `json:"content"`
}

func (s *Server) handlePostChat(w http.ResponseWriter, r *http.Request) {
	var req postChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := s.wellness.PostChat(chi.URLParam(r, "userID"), req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.wellness.ChatHistory(listLimit(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": msgs,
	})
}
