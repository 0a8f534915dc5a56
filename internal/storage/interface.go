package storage

import "prodhub/internal/models"

// Provider is the persistence contract shared by the SQLite and PostgreSQL
// backends. Every read and mutation on a user-owned entity is scoped by the
// caller's user id; no operation is valid without one.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Reset destroys all application data and reinitializes the schema.
	Reset() error
	Path() string

	// Users
	CreateUser(username, email string, passwordHash []byte) (models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)

	// Tasks
	AddTask(task models.Task) (models.Task, error)
	GetTasks(userID int64, filter models.StatusFilter) ([]models.Task, error)
	// CompleteTask marks a pending task completed. Missing or foreign-owned
	// tasks are a silent no-op.
	CompleteTask(userID, taskID int64) error
	// ReplaceTask performs a full-record update and returns ErrNotFound when
	// the task is missing or owned by another user.
	ReplaceTask(userID int64, task models.Task) (models.Task, error)
	DeleteTask(userID, taskID int64) error
	CountTasks(userID int64, filter models.StatusFilter) (int, error)

	// Habits
	AddHabit(habit models.Habit) (models.Habit, error)
	GetHabits(userID int64) ([]models.Habit, error)
	// CheckInHabit advances the streak at most once per calendar day. The day
	// is passed explicitly in YYYY-MM-DD form.
	CheckInHabit(userID, habitID int64, today string) (models.CheckInResult, error)
	DeleteHabit(userID, habitID int64) error

	// Progress
	SaveProgress(progress models.Progress) (models.Progress, error)
	GetProgressHistory(userID int64) ([]models.Progress, error)
	GetAverageScore(userID int64) (float64, error)

	// Journal
	AddJournalEntry(entry models.JournalEntry) (models.JournalEntry, error)
	GetJournalEntries(userID int64) ([]models.JournalEntry, error)
	DeleteJournalEntry(userID, entryID int64) error
}
