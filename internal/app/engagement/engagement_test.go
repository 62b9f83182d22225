package engagement_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/serene-app/serene/internal/app/engagement"
	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedBadges installs a badge set for evaluator tests.
func seedBadges(t *testing.T, db *sqlite.DB, badges []domain.Badge) {
	t.Helper()
	for _, b := range badges {
		if err := db.UpsertBadge(b); err != nil {
			t.Fatalf("seed badge %s: %v", b.ID, err)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStreak_FirstActivity(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	day := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	stats, err := tracker.RecordActivity("user-1", day, domain.ActivityMood)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if stats.CurrentStreak != 1 {
		t.Errorf("expected streak 1, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 1 {
		t.Errorf("expected longest 1, got %d", stats.LongestStreak)
	}
	if stats.TotalPoints != 10 {
		t.Errorf("expected 10 points, got %d", stats.TotalPoints)
	}
	if !stats.LastActivityDate.Equal(domain.Day(day)) {
		t.Errorf("expected last activity %v, got %v", domain.Day(day), stats.LastActivityDate)
	}
}

func TestStreak_ConsecutiveDay(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	day1 := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 11, 21, 0, 0, 0, time.UTC)

	_, _ = tracker.RecordActivity("user-1", day1, domain.ActivityMood)
	stats, err := tracker.RecordActivity("user-1", day2, domain.ActivityJournal)
	if err != nil {
		t.Fatalf("record day 2: %v", err)
	}

	if stats.CurrentStreak != 2 {
		t.Errorf("expected streak 2, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 2 {
		t.Errorf("expected longest 2, got %d", stats.LongestStreak)
	}
	if stats.TotalPoints != 20 {
		t.Errorf("expected 20 points, got %d", stats.TotalPoints)
	}
}

func TestStreak_SameDayUnchanged(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	day := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("user-1", day, domain.ActivityMood)
	stats, err := tracker.RecordActivity("user-1", day.Add(6*time.Hour), domain.ActivityTask)
	if err != nil {
		t.Fatalf("record same day: %v", err)
	}

	if stats.CurrentStreak != 1 {
		t.Errorf("expected streak unchanged at 1, got %d", stats.CurrentStreak)
	}
	// Default policy: same-day repeats still earn points
	if stats.TotalPoints != 20 {
		t.Errorf("expected 20 points with same-day points on, got %d", stats.TotalPoints)
	}
}

func TestStreak_SameDayPointsOff(t *testing.T) {
	db := testDB(t)
	cfg := engagement.Config{PointsPerActivity: 10, SameDayPoints: false}
	tracker := engagement.NewStreakTracker(db, cfg, nil, nil)

	day := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("user-1", day, domain.ActivityMood)
	stats, err := tracker.RecordActivity("user-1", day.Add(2*time.Hour), domain.ActivityMood)
	if err != nil {
		t.Fatalf("record same day: %v", err)
	}

	if stats.CurrentStreak != 1 {
		t.Errorf("expected streak 1, got %d", stats.CurrentStreak)
	}
	if stats.TotalPoints != 10 {
		t.Errorf("expected 10 points with same-day points off, got %d", stats.TotalPoints)
	}

	// The stored row must be untouched too
	stored, _ := tracker.Stats("user-1")
	if stored.TotalPoints != 10 {
		t.Errorf("expected stored 10 points, got %d", stored.TotalPoints)
	}
}

func TestStreak_GapResets(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	// Jan 10, Jan 11, then a gap to Jan 14
	_, _ = tracker.RecordActivity("user-1", time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), domain.ActivityMood)
	_, _ = tracker.RecordActivity("user-1", time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), domain.ActivityMood)
	stats, err := tracker.RecordActivity("user-1", time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC), domain.ActivityMood)
	if err != nil {
		t.Fatalf("record after gap: %v", err)
	}

	if stats.CurrentStreak != 1 {
		t.Errorf("expected streak reset to 1, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 2 {
		t.Errorf("expected longest preserved at 2, got %d", stats.LongestStreak)
	}
	if stats.TotalPoints != 30 {
		t.Errorf("expected 30 points, got %d", stats.TotalPoints)
	}
}

func TestStreak_LongestNeverDecreases(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, _ = tracker.RecordActivity("user-1", base.AddDate(0, 0, i), domain.ActivityHabit)
	}

	// Break, rebuild a shorter streak, break again
	_, _ = tracker.RecordActivity("user-1", base.AddDate(0, 0, 10), domain.ActivityHabit)
	_, _ = tracker.RecordActivity("user-1", base.AddDate(0, 0, 11), domain.ActivityHabit)
	stats, _ := tracker.RecordActivity("user-1", base.AddDate(0, 0, 20), domain.ActivityHabit)

	if stats.LongestStreak != 5 {
		t.Errorf("expected longest 5, got %d", stats.LongestStreak)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("expected current 1, got %d", stats.CurrentStreak)
	}
}

func TestStreak_UsersIndependent(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("alice", base, domain.ActivityMood)
	_, _ = tracker.RecordActivity("alice", base.AddDate(0, 0, 1), domain.ActivityMood)
	_, _ = tracker.RecordActivity("bob", base.AddDate(0, 0, 1), domain.ActivityMood)

	alice, _ := tracker.Stats("alice")
	bob, _ := tracker.Stats("bob")
	if alice.CurrentStreak != 2 {
		t.Errorf("alice expected streak 2, got %d", alice.CurrentStreak)
	}
	if bob.CurrentStreak != 1 {
		t.Errorf("bob expected streak 1, got %d", bob.CurrentStreak)
	}
}

func TestStreak_MissingUserID(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	_, err := tracker.RecordActivity("", time.Now(), domain.ActivityMood)
	if err != domain.ErrMissingUserID {
		t.Errorf("expected ErrMissingUserID, got %v", err)
	}
}

func TestStreak_StatsForUnknownUser(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	stats, err := tracker.Stats("nobody")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != nil {
		t.Errorf("expected nil stats for unknown user, got %+v", stats)
	}
}

func TestStreak_ConcurrentSameDay(t *testing.T) {
	db := testDB(t)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	day := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = tracker.RecordActivity("user-1", day, domain.ActivityMood)
		}()
	}
	wg.Wait()

	stats, _ := tracker.Stats("user-1")
	if stats.CurrentStreak != 1 {
		t.Errorf("expected streak 1 under concurrency, got %d", stats.CurrentStreak)
	}
	// Same-day points on: every call grants, none lost
	if stats.TotalPoints != 100 {
		t.Errorf("expected 100 points from 10 grants, got %d", stats.TotalPoints)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badge Evaluator Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEvaluate_StreakBadge(t *testing.T) {
	db := testDB(t)
	seedBadges(t, db, []domain.Badge{{
		ID: "warming_up", Name: "Warming Up",
		RequirementType: domain.ReqStreak, RequirementValue: 3,
	}})
	evaluator := engagement.NewBadgeEvaluator(db, nil)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, evaluator)

	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("user-1", base, domain.ActivityMood)
	_, _ = tracker.RecordActivity("user-1", base.AddDate(0, 0, 1), domain.ActivityMood)
	_, _ = tracker.RecordActivity("user-1", base.AddDate(0, 0, 2), domain.ActivityMood)

	earned, err := db.ListUserBadges("user-1")
	if err != nil {
		t.Fatalf("list badges: %v", err)
	}
	if len(earned) != 1 {
		t.Fatalf("expected 1 badge, got %d", len(earned))
	}
	if earned[0].BadgeID != "warming_up" {
		t.Errorf("expected warming_up, got %s", earned[0].BadgeID)
	}
}

func TestEvaluate_SecondCallAwardsNothing(t *testing.T) {
	db := testDB(t)
	seedBadges(t, db, []domain.Badge{{
		ID: "first_steps", Name: "First Steps",
		RequirementType: domain.ReqMoodEntries, RequirementValue: 1,
	}})
	evaluator := engagement.NewBadgeEvaluator(db, nil)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	day := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("user-1", day, domain.ActivityMood)
	_ = db.InsertMoodEntry(domain.MoodEntry{ID: "m1", UserID: "user-1", Mood: "calm", CreatedAt: day})

	first, err := evaluator.Evaluate("user-1")
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 award, got %d", len(first))
	}

	second, err := evaluator.Evaluate("user-1")
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second evaluate should award nothing, got %v", second)
	}
}

func TestEvaluate_NoStatsNoAwards(t *testing.T) {
	db := testDB(t)
	seedBadges(t, db, engagement.DefaultCatalog())
	evaluator := engagement.NewBadgeEvaluator(db, nil)

	awarded, err := evaluator.Evaluate("nobody")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(awarded) != 0 {
		t.Errorf("expected no awards without stats, got %v", awarded)
	}
}

func TestEvaluate_UnknownRequirementTypeSkipped(t *testing.T) {
	db := testDB(t)
	seedBadges(t, db, []domain.Badge{
		{
			ID: "mystery", Name: "Mystery",
			RequirementType: "moon_phases", RequirementValue: 1,
		},
		{
			ID: "first_steps", Name: "First Steps",
			RequirementType: domain.ReqMoodEntries, RequirementValue: 1,
		},
	})
	evaluator := engagement.NewBadgeEvaluator(db, nil)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	day := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("user-1", day, domain.ActivityMood)
	_ = db.InsertMoodEntry(domain.MoodEntry{ID: "m1", UserID: "user-1", Mood: "calm", CreatedAt: day})

	awarded, err := evaluator.Evaluate("user-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(awarded) != 1 || awarded[0] != "first_steps" {
		t.Errorf("expected only first_steps, got %v", awarded)
	}
}

func TestEvaluate_BelowThresholdNoAward(t *testing.T) {
	db := testDB(t)
	seedBadges(t, db, []domain.Badge{{
		ID: "mood_mapper", Name: "Mood Mapper",
		RequirementType: domain.ReqMoodEntries, RequirementValue: 5,
	}})
	evaluator := engagement.NewBadgeEvaluator(db, nil)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	day := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("user-1", day, domain.ActivityMood)
	_ = db.InsertMoodEntry(domain.MoodEntry{ID: "m1", UserID: "user-1", Mood: "calm", CreatedAt: day})

	awarded, err := evaluator.Evaluate("user-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(awarded) != 0 {
		t.Errorf("expected no awards at 1/5 entries, got %v", awarded)
	}
}

func TestEvaluate_ConcurrentSingleAward(t *testing.T) {
	db := testDB(t)
	seedBadges(t, db, []domain.Badge{{
		ID: "warming_up", Name: "Warming Up",
		RequirementType: domain.ReqStreak, RequirementValue: 3,
	}})
	evaluator := engagement.NewBadgeEvaluator(db, nil)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, _ = tracker.RecordActivity("user-1", base.AddDate(0, 0, i), domain.ActivityMood)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			awarded, err := evaluator.Evaluate("user-1")
			if err != nil {
				t.Errorf("concurrent evaluate: %v", err)
				return
			}
			mu.Lock()
			total += len(awarded)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if total != 1 {
		t.Errorf("expected exactly 1 award across all evaluators, got %d", total)
	}
	earned, _ := db.ListUserBadges("user-1")
	if len(earned) != 1 {
		t.Errorf("expected exactly 1 award row, got %d", len(earned))
	}
}

func TestEvaluate_AllRequirementTypes(t *testing.T) {
	db := testDB(t)
	seedBadges(t, db, engagement.DefaultCatalog())
	evaluator := engagement.NewBadgeEvaluator(db, nil)
	tracker := engagement.NewStreakTracker(db, engagement.DefaultConfig(), nil, nil)

	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	_, _ = tracker.RecordActivity("user-1", base, domain.ActivityMood)
	_ = db.InsertMoodEntry(domain.MoodEntry{ID: "m1", UserID: "user-1", Mood: "calm", CreatedAt: base})

	awarded, err := evaluator.Evaluate("user-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// One mood entry qualifies for first_steps only
	if len(awarded) != 1 || awarded[0] != "first_steps" {
		t.Errorf("expected [first_steps], got %v", awarded)
	}
}

func TestDefaultCatalog_Consistent(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range engagement.DefaultCatalog() {
		if b.ID == "" || b.Name == "" {
			t.Errorf("badge with empty ID or name: %+v", b)
		}
		if seen[b.ID] {
			t.Errorf("duplicate badge ID %s", b.ID)
		}
		seen[b.ID] = true
		if b.RequirementValue < 1 {
			t.Errorf("badge %s has non-positive requirement %d", b.ID, b.RequirementValue)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Notification Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestNotification_Create(t *testing.T) {
	db := testDB(t)
	notifier := engagement.NewNotifierWithPolicy(db, domain.NotificationPolicy{
		MaxPerDay:  3,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	})

	id, err := notifier.Create(domain.Notification{
		UserID:    "user-1",
		Type:      domain.NotifyBadgeEarned,
		Title:     "Badge earned: First Steps",
		Body:      "Log your first mood check-in",
		CreatedAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), // Noon — not quiet
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}
}

func TestNotification_DailyLimitPerUser(t *testing.T) {
	db := testDB(t)
	notifier := engagement.NewNotifierWithPolicy(db, domain.NotificationPolicy{
		MaxPerDay:  1,
		QuietStart: "23:00",
		QuietEnd:   "05:00",
	})

	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	notif := domain.Notification{
		UserID: "user-1", Type: domain.NotifyBadgeEarned,
		Title: "First", Body: "first", CreatedAt: at,
	}

	id1, _ := notifier.Create(notif)
	if id1 == 0 {
		t.Error("first should succeed")
	}

	notif.Title = "Second"
	id2, err := notifier.Create(notif)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if id2 != 0 {
		t.Error("second should be suppressed (daily limit)")
	}

	// A different user has their own budget
	other := notif
	other.UserID = "user-2"
	id3, _ := notifier.Create(other)
	if id3 == 0 {
		t.Error("other user's first notification should succeed")
	}
}

func TestNotification_QuietHours(t *testing.T) {
	db := testDB(t)
	notifier := engagement.NewNotifierWithPolicy(db, domain.NotificationPolicy{
		MaxPerDay:  5,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	})

	notif := domain.Notification{
		UserID: "user-1", Type: domain.NotifyStreakReached,
		Title: "Late Night", Body: "should be suppressed",
		CreatedAt: time.Date(2024, 1, 10, 0, 30, 0, 0, time.UTC),
	}

	id, err := notifier.Create(notif)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 0 {
		t.Error("expected suppression during quiet hours (00:30)")
	}

	notif.CreatedAt = time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)
	id, _ = notifier.Create(notif)
	if id != 0 {
		t.Error("expected suppression during quiet hours (23:00)")
	}

	notif.CreatedAt = time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	id, _ = notifier.Create(notif)
	if id == 0 {
		t.Error("expected creation outside quiet hours (10:00)")
	}
}

func TestNotification_PendingAndMarkShown(t *testing.T) {
	db := testDB(t)
	notifier := engagement.NewNotifierWithPolicy(db, domain.NotificationPolicy{
		MaxPerDay:  10,
		QuietStart: "23:00",
		QuietEnd:   "05:00",
	})

	id, _ := notifier.Create(domain.Notification{
		UserID: "user-1", Type: domain.NotifyBadgeEarned,
		Title: "Test", Body: "test body",
		CreatedAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	})

	pending, err := notifier.Pending("user-1", 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}

	if err := notifier.MarkShown(id); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, _ = notifier.Pending("user-1", 10)
	if len(pending) != 0 {
		t.Error("expected 0 pending after marking shown")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
