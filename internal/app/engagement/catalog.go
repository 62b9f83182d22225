package engagement

import "github.com/serene-app/serene/internal/domain"

// DefaultCatalog returns the badge set the seed command installs.
// Catalog rows are reference data: the engine reads them, administrators
// own them. Thresholds mirror the original app's badge ladder.
func DefaultCatalog() []domain.Badge {
	return []domain.Badge{
		// ── Mood ───────────────────────────────────────────────────────
		{
			ID: "first_steps", Name: "First Steps", Icon: "🌱",
			Description:     "Log your first mood check-in",
			RequirementType: domain.ReqMoodEntries, RequirementValue: 1,
		},
		{
			ID: "mood_mapper", Name: "Mood Mapper", Icon: "🗺️",
			Description:     "Log 5 mood check-ins",
			RequirementType: domain.ReqMoodEntries, RequirementValue: 5,
		},
		{
			ID: "emotional_explorer", Name: "Emotional Explorer", Icon: "🧭",
			Description:     "Log 30 mood check-ins",
			RequirementType: domain.ReqMoodEntries, RequirementValue: 30,
		},

		// ── Journal ────────────────────────────────────────────────────
		{
			ID: "dear_diary", Name: "Dear Diary", Icon: "📔",
			Description:     "Write 3 journal entries",
			RequirementType: domain.ReqJournalEntries, RequirementValue: 3,
		},
		{
			ID: "storyteller", Name: "Storyteller", Icon: "✍️",
			Description:     "Write 20 journal entries",
			RequirementType: domain.ReqJournalEntries, RequirementValue: 20,
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "warming_up", Name: "Warming Up", Icon: "✨",
			Description:     "Reach a 3-day streak",
			RequirementType: domain.ReqStreak, RequirementValue: 3,
		},
		{
			ID: "week_warrior", Name: "Week Warrior", Icon: "🔥",
			Description:     "Reach a 7-day streak",
			RequirementType: domain.ReqStreak, RequirementValue: 7,
		},
		{
			ID: "monthly_devotion", Name: "Monthly Devotion", Icon: "🌙",
			Description:     "Reach a 30-day streak",
			RequirementType: domain.ReqStreak, RequirementValue: 30,
		},

		// ── Tasks ──────────────────────────────────────────────────────
		{
			ID: "list_checker", Name: "List Checker", Icon: "✅",
			Description:     "Complete 10 tasks",
			RequirementType: domain.ReqTasksCompleted, RequirementValue: 10,
		},
		{
			ID: "productivity_pro", Name: "Productivity Pro", Icon: "🚀",
			Description:     "Complete 50 tasks",
			RequirementType: domain.ReqTasksCompleted, RequirementValue: 50,
		},

		// ── Habits ─────────────────────────────────────────────────────
		{
			ID: "creature_of_habit", Name: "Creature of Habit", Icon: "🌿",
			Description:     "Check off 7 habit completions",
			RequirementType: domain.ReqHabitCompletions, RequirementValue: 7,
		},
		{
			ID: "habit_master", Name: "Habit Master", Icon: "🏆",
			Description:     "Check off 30 habit completions",
			RequirementType: domain.ReqHabitCompletions, RequirementValue: 30,
		},
	}
}
