package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"prodhub/internal/constants"
	"prodhub/internal/models"
)

func setupTestStore(t *testing.T) (*SQLiteStore, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	return store, func() { store.Close() }
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) models.User {
	t.Helper()
	user, err := store.CreateUser(username, username+"@example.com", []byte("hash-"+username))
	if err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func TestCreateUserDuplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if _, err := store.CreateUser("harsh", "harsh@example.com", []byte("h1")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := store.CreateUser("harsh", "different@example.com", []byte("h2")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate username: expected ErrDuplicate, got %v", err)
	}
	if _, err := store.CreateUser("different", "harsh@example.com", []byte("h3")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate email: expected ErrDuplicate, got %v", err)
	}
}

func TestGetUserMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user, err := store.GetUserByUsername("nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Error("expected nil user for unknown username")
	}
}

func TestTaskLifecycle(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	task, err := store.AddTask(models.Task{
		UserID:   user.ID,
		Title:    "Essay",
		Deadline: "2024-05-01",
		Priority: constants.PriorityHigh,
		Status:   constants.StatusPending,
	})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	all, err := store.GetTasks(user.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 task, got %d", len(all))
	}
	if all[0].Title != "Essay" || all[0].Status != constants.StatusPending {
		t.Errorf("unexpected task: %+v", all[0])
	}

	if err := store.CompleteTask(user.ID, task.ID); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}

	completed, err := store.GetTasks(user.ID, models.FilterCompleted)
	if err != nil {
		t.Fatalf("failed to list completed tasks: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != task.ID {
		t.Errorf("expected the completed task, got %+v", completed)
	}

	pending, err := store.GetTasks(user.ID, models.FilterPending)
	if err != nil {
		t.Fatalf("failed to list pending tasks: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending tasks, got %d", len(pending))
	}
}

func TestTaskOrderedByDeadline(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "tanish")

	deadlines := []string{"2024-06-15", "2024-05-01", "2024-05-30"}
	for _, d := range deadlines {
		if _, err := store.AddTask(models.Task{
			UserID:   user.ID,
			Title:    "due " + d,
			Deadline: d,
			Priority: constants.PriorityLow,
			Status:   constants.StatusPending,
		}); err != nil {
			t.Fatalf("failed to add task: %v", err)
		}
	}

	tasks, err := store.GetTasks(user.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}

	want := []string{"2024-05-01", "2024-05-30", "2024-06-15"}
	for i, task := range tasks {
		if task.Deadline != want[i] {
			t.Errorf("position %d: expected deadline %s, got %s", i, want[i], task.Deadline)
		}
	}
}

func TestTaskOwnershipScoping(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	owner := mustCreateUser(t, store, "owner")
	intruder := mustCreateUser(t, store, "intruder")

	task, err := store.AddTask(models.Task{
		UserID:   owner.ID,
		Title:    "private",
		Deadline: "2024-05-01",
		Priority: constants.PriorityMedium,
		Status:   constants.StatusPending,
	})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	// Foreign complete and delete are silent no-ops
	if err := store.CompleteTask(intruder.ID, task.ID); err != nil {
		t.Fatalf("foreign complete should not error: %v", err)
	}
	if err := store.DeleteTask(intruder.ID, task.ID); err != nil {
		t.Fatalf("foreign delete should not error: %v", err)
	}

	tasks, err := store.GetTasks(owner.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != constants.StatusPending {
		t.Errorf("foreign mutations must leave the record unchanged: %+v", tasks)
	}

	// Foreign listing sees nothing
	foreign, err := store.GetTasks(intruder.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(foreign) != 0 {
		t.Errorf("intruder should see no tasks, got %d", len(foreign))
	}

	// Foreign replace reports not found
	task.Title = "hijacked"
	if _, err := store.ReplaceTask(intruder.ID, task); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign replace: expected ErrNotFound, got %v", err)
	}
}

func TestReplaceTask(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	task, err := store.AddTask(models.Task{
		UserID:   user.ID,
		Title:    "Draft",
		Deadline: "2024-05-01",
		Priority: constants.PriorityLow,
		Status:   constants.StatusPending,
	})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	task.Title = "Final draft"
	task.Priority = constants.PriorityHigh
	task.Deadline = "2024-05-10"
	updated, err := store.ReplaceTask(user.ID, task)
	if err != nil {
		t.Fatalf("failed to replace task: %v", err)
	}
	if updated.Title != "Final draft" || updated.Priority != constants.PriorityHigh {
		t.Errorf("unexpected replaced task: %+v", updated)
	}

	tasks, err := store.GetTasks(user.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if tasks[0].Title != "Final draft" || tasks[0].Deadline != "2024-05-10" {
		t.Errorf("replace did not persist: %+v", tasks[0])
	}
}

func TestReplaceTaskCanReopen(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	task, err := store.AddTask(models.Task{
		UserID:   user.ID,
		Title:    "Essay",
		Deadline: "2024-05-01",
		Priority: constants.PriorityHigh,
		Status:   constants.StatusPending,
	})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	if err := store.CompleteTask(user.ID, task.ID); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}

	task.Status = constants.StatusPending
	if _, err := store.ReplaceTask(user.ID, task); err != nil {
		t.Fatalf("failed to replace task: %v", err)
	}

	pending, err := store.GetTasks(user.ID, models.FilterPending)
	if err != nil {
		t.Fatalf("failed to list pending tasks: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("full-record replace should be able to reopen a task, got %d pending", len(pending))
	}
}

func TestCountTasks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")
	for i, status := range []constants.TaskStatus{constants.StatusPending, constants.StatusPending, constants.StatusCompleted} {
		if _, err := store.AddTask(models.Task{
			UserID:   user.ID,
			Title:    "t",
			Deadline: "2024-05-01",
			Priority: constants.PriorityLow,
			Status:   status,
		}); err != nil {
			t.Fatalf("failed to add task %d: %v", i, err)
		}
	}

	pending, err := store.CountTasks(user.ID, models.FilterPending)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if pending != 2 {
		t.Errorf("expected 2 pending tasks, got %d", pending)
	}

	all, err := store.CountTasks(user.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if all != 3 {
		t.Errorf("expected 3 tasks, got %d", all)
	}
}

func TestHabitCheckInDebounce(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	habit, err := store.AddHabit(models.Habit{
		UserID:      user.ID,
		Name:        "Morning reading",
		Frequency:   constants.FrequencyDaily,
		StartDate:   "2024-05-01",
		LastChecked: "2024-05-01",
		Streak:      0,
	})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	// Same calendar day: rejected, no state change
	result, err := store.CheckInHabit(user.ID, habit.ID, "2024-05-01")
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if result != models.AlreadyCheckedToday {
		t.Errorf("expected AlreadyCheckedToday, got %v", result)
	}

	habits, err := store.GetHabits(user.ID)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if habits[0].Streak != 0 || habits[0].LastChecked != "2024-05-01" {
		t.Errorf("rejected check-in must not change state: %+v", habits[0])
	}

	// Next day: streak advances
	result, err = store.CheckInHabit(user.ID, habit.ID, "2024-05-02")
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if result != models.CheckedIn {
		t.Errorf("expected CheckedIn, got %v", result)
	}

	habits, err = store.GetHabits(user.ID)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if habits[0].Streak != 1 || habits[0].LastChecked != "2024-05-02" {
		t.Errorf("expected streak 1 and last_checked 2024-05-02, got %+v", habits[0])
	}

	// Second distinct day: streak advances again, exactly once per day
	if _, err := store.CheckInHabit(user.ID, habit.ID, "2024-05-03"); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if result, err := store.CheckInHabit(user.ID, habit.ID, "2024-05-03"); err != nil || result != models.AlreadyCheckedToday {
		t.Errorf("repeat same-day check-in: expected AlreadyCheckedToday, got %v (err %v)", result, err)
	}

	habits, err = store.GetHabits(user.ID)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if habits[0].Streak != 2 {
		t.Errorf("two distinct days must give streak 2, got %d", habits[0].Streak)
	}
}

func TestHabitCheckInOwnership(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	owner := mustCreateUser(t, store, "owner")
	intruder := mustCreateUser(t, store, "intruder")

	habit, err := store.AddHabit(models.Habit{
		UserID:      owner.ID,
		Name:        "Journaling",
		Frequency:   constants.FrequencyDaily,
		StartDate:   "2024-05-01",
		LastChecked: "2024-05-01",
	})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	if _, err := store.CheckInHabit(intruder.ID, habit.ID, "2024-05-02"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign check-in: expected ErrNotFound, got %v", err)
	}

	habits, err := store.GetHabits(owner.ID)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if habits[0].Streak != 0 {
		t.Errorf("foreign check-in must not advance the streak, got %d", habits[0].Streak)
	}
}

func TestHabitsOrderedByStreak(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	for name, streak := range map[string]int{"low": 1, "high": 9, "mid": 4} {
		if _, err := store.AddHabit(models.Habit{
			UserID:      user.ID,
			Name:        name,
			Frequency:   constants.FrequencyWeekly,
			StartDate:   "2024-05-01",
			LastChecked: "2024-05-01",
			Streak:      streak,
		}); err != nil {
			t.Fatalf("failed to add habit %q: %v", name, err)
		}
	}

	habits, err := store.GetHabits(user.ID)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}

	want := []string{"high", "mid", "low"}
	for i, h := range habits {
		if h.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], h.Name)
		}
	}
}

func TestProgressUpsert(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	for score := constants.MinScore; score <= constants.MaxScore; score++ {
		if _, err := store.SaveProgress(models.Progress{
			UserID: user.ID,
			Date:   "2024-05-01",
			Score:  score,
			Notes:  "rated day",
		}); err != nil {
			t.Fatalf("failed to save score %d: %v", score, err)
		}

		history, err := store.GetProgressHistory(user.ID)
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("upsert must keep exactly one row per day, got %d", len(history))
		}
		if history[0].Score != score {
			t.Errorf("expected latest score %d, got %d", score, history[0].Score)
		}
	}
}

func TestProgressHistoryOrderedByDate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	for _, date := range []string{"2024-05-03", "2024-05-01", "2024-05-02"} {
		if _, err := store.SaveProgress(models.Progress{UserID: user.ID, Date: date, Score: 5}); err != nil {
			t.Fatalf("failed to save progress: %v", err)
		}
	}

	history, err := store.GetProgressHistory(user.ID)
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}

	want := []string{"2024-05-01", "2024-05-02", "2024-05-03"}
	for i, p := range history {
		if p.Date != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.Date)
		}
	}
}

func TestAverageScore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	if _, err := store.GetAverageScore(user.ID); !errors.Is(err, ErrNoData) {
		t.Errorf("empty history: expected ErrNoData, got %v", err)
	}

	for date, score := range map[string]int{"2024-05-01": 4, "2024-05-02": 8} {
		if _, err := store.SaveProgress(models.Progress{UserID: user.ID, Date: date, Score: score}); err != nil {
			t.Fatalf("failed to save progress: %v", err)
		}
	}

	avg, err := store.GetAverageScore(user.ID)
	if err != nil {
		t.Fatalf("failed to get average: %v", err)
	}
	if avg != 6.0 {
		t.Errorf("expected average 6.0, got %v", avg)
	}
}

func TestJournalLifecycle(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")

	first, err := store.AddJournalEntry(models.JournalEntry{
		UserID:    user.ID,
		EntryDate: "2024-05-01",
		Content:   "slow start",
		Mood:      constants.MoodMeh,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}

	// Multiple entries per day are allowed
	if _, err := store.AddJournalEntry(models.JournalEntry{
		UserID:    user.ID,
		EntryDate: "2024-05-01",
		Content:   "better evening",
		Mood:      constants.MoodGood,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("failed to add second entry: %v", err)
	}
	if _, err := store.AddJournalEntry(models.JournalEntry{
		UserID:    user.ID,
		EntryDate: "2024-05-02",
		Content:   "great day",
		Mood:      constants.MoodAmazing,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("failed to add third entry: %v", err)
	}

	entries, err := store.GetJournalEntries(user.ID)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Newest entry date first
	if entries[0].EntryDate != "2024-05-02" {
		t.Errorf("expected newest entry first, got %s", entries[0].EntryDate)
	}

	if err := store.DeleteJournalEntry(user.ID, first.ID); err != nil {
		t.Fatalf("failed to delete entry: %v", err)
	}
	entries, err = store.GetJournalEntries(user.ID)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries after delete, got %d", len(entries))
	}
}

func TestJournalDeleteOwnership(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	owner := mustCreateUser(t, store, "owner")
	intruder := mustCreateUser(t, store, "intruder")

	entry, err := store.AddJournalEntry(models.JournalEntry{
		UserID:    owner.ID,
		EntryDate: "2024-05-01",
		Content:   "private thoughts",
		Mood:      constants.MoodGood,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}

	if err := store.DeleteJournalEntry(intruder.ID, entry.ID); err != nil {
		t.Fatalf("foreign delete should not error: %v", err)
	}

	entries, err := store.GetJournalEntries(owner.ID)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Error("foreign delete must leave the entry in place")
	}
}

func TestReset(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "harsh")
	if _, err := store.AddTask(models.Task{
		UserID:   user.ID,
		Title:    "doomed",
		Deadline: "2024-05-01",
		Priority: constants.PriorityLow,
		Status:   constants.StatusPending,
	}); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}

	got, err := store.GetUserByUsername("harsh")
	if err != nil {
		t.Fatalf("failed to query after reset: %v", err)
	}
	if got != nil {
		t.Error("reset must destroy all data")
	}
}
