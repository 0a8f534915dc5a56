package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"prodhub/internal/migration"
	"prodhub/internal/models"
	"prodhub/migrations"
)

// SQLiteStore is the default file-backed store.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore creates a store for the database file at path. The database
// is not opened until Init or Load.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'prodhub db init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Reset removes the database file and reinitializes the schema.
func (s *SQLiteStore) Reset() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		s.db = nil
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove database file: %w", err)
	}

	return s.Init()
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *SQLiteStore) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	return migration.NewRunner(s.db, subFS).ValidateVersion()
}

func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Users

func (s *SQLiteStore) CreateUser(username, email string, passwordHash []byte) (models.User, error) {
	createdAt := time.Now().UTC()
	res, err := s.db.Exec(`
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		username, email, string(passwordHash), createdAt.Format(time.RFC3339))
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}

func (s *SQLiteStore) GetUserByUsername(username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ?`, username))
}

func (s *SQLiteStore) GetUserByID(id int64) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var hash, createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &hash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	u.PasswordHash = []byte(hash)
	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &u, nil
}

// Tasks

func (s *SQLiteStore) AddTask(task models.Task) (models.Task, error) {
	res, err := s.db.Exec(`
		INSERT INTO tasks (user_id, title, description, deadline, priority, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.UserID, task.Title, task.Description, task.Deadline, task.Priority, task.Status)
	if err != nil {
		return models.Task{}, err
	}

	task.ID, err = res.LastInsertId()
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *SQLiteStore) GetTasks(userID int64, filter models.StatusFilter) ([]models.Task, error) {
	query := `
		SELECT id, user_id, title, description, deadline, priority, status
		FROM tasks WHERE user_id = ?`
	args := []any{userID}

	if filter != models.FilterAll {
		query += " AND status = ?"
		args = append(args, string(filter))
	}
	query += " ORDER BY deadline, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Deadline, &t.Priority, &t.Status); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *SQLiteStore) CompleteTask(userID, taskID int64) error {
	// Missing or foreign-owned rows match nothing; the mutation is a silent
	// no-op so existence is never leaked.
	_, err := s.db.Exec(`
		UPDATE tasks SET status = 'completed' WHERE id = ? AND user_id = ?`,
		taskID, userID)
	return err
}

func (s *SQLiteStore) ReplaceTask(userID int64, task models.Task) (models.Task, error) {
	res, err := s.db.Exec(`
		UPDATE tasks SET title = ?, description = ?, deadline = ?, priority = ?, status = ?
		WHERE id = ? AND user_id = ?`,
		task.Title, task.Description, task.Deadline, task.Priority, task.Status,
		task.ID, userID)
	if err != nil {
		return models.Task{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrNotFound
	}

	task.UserID = userID
	return task, nil
}

func (s *SQLiteStore) DeleteTask(userID, taskID int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	return err
}

func (s *SQLiteStore) CountTasks(userID int64, filter models.StatusFilter) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE user_id = ?`
	args := []any{userID}
	if filter != models.FilterAll {
		query += " AND status = ?"
		args = append(args, string(filter))
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Habits

func (s *SQLiteStore) AddHabit(habit models.Habit) (models.Habit, error) {
	res, err := s.db.Exec(`
		INSERT INTO habits (user_id, name, description, frequency, start_date, last_checked, streak)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.UserID, habit.Name, habit.Description, habit.Frequency,
		habit.StartDate, habit.LastChecked, habit.Streak)
	if err != nil {
		return models.Habit{}, err
	}

	habit.ID, err = res.LastInsertId()
	if err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *SQLiteStore) GetHabits(userID int64) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, description, frequency, start_date, last_checked, streak
		FROM habits WHERE user_id = ? ORDER BY streak DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.StartDate, &h.LastChecked, &h.Streak); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) CheckInHabit(userID, habitID int64, today string) (models.CheckInResult, error) {
	// The guard on last_checked makes the debounce atomic: two concurrent
	// check-ins for the same day cannot both match, so the streak advances at
	// most once per calendar day. last_checked only ever moves forward.
	res, err := s.db.Exec(`
		UPDATE habits SET last_checked = ?, streak = streak + 1
		WHERE id = ? AND user_id = ? AND last_checked < ?`,
		today, habitID, userID, today)
	if err != nil {
		return "", err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if affected > 0 {
		return models.CheckedIn, nil
	}

	// Nothing matched: either already checked today or not this user's habit.
	var lastChecked string
	err = s.db.QueryRow(`
		SELECT last_checked FROM habits WHERE id = ? AND user_id = ?`,
		habitID, userID).Scan(&lastChecked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return models.AlreadyCheckedToday, nil
}

func (s *SQLiteStore) DeleteHabit(userID, habitID int64) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = ? AND user_id = ?`, habitID, userID)
	return err
}

// Progress

func (s *SQLiteStore) SaveProgress(progress models.Progress) (models.Progress, error) {
	_, err := s.db.Exec(`
		INSERT INTO progress (user_id, date, score, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			score = excluded.score,
			notes = excluded.notes`,
		progress.UserID, progress.Date, progress.Score, progress.Notes)
	if err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}

func (s *SQLiteStore) GetProgressHistory(userID int64) ([]models.Progress, error) {
	rows, err := s.db.Query(`
		SELECT user_id, date, score, notes
		FROM progress WHERE user_id = ? ORDER BY date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.Progress
	for rows.Next() {
		var p models.Progress
		if err := rows.Scan(&p.UserID, &p.Date, &p.Score, &p.Notes); err != nil {
			return nil, err
		}
		history = append(history, p)
	}

	return history, rows.Err()
}

func (s *SQLiteStore) GetAverageScore(userID int64) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT AVG(score) FROM progress WHERE user_id = ?`, userID).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, ErrNoData
	}
	return avg.Float64, nil
}

// Journal

func (s *SQLiteStore) AddJournalEntry(entry models.JournalEntry) (models.JournalEntry, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO journal_entries (user_id, entry_date, content, mood, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.UserID, entry.EntryDate, entry.Content, entry.Mood,
		entry.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

func (s *SQLiteStore) GetJournalEntries(userID int64) ([]models.JournalEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, entry_date, content, mood, created_at
		FROM journal_entries WHERE user_id = ?
		ORDER BY entry_date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Content, &e.Mood, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for entry %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) DeleteJournalEntry(userID, entryID int64) error {
	_, err := s.db.Exec(`DELETE FROM journal_entries WHERE id = ? AND user_id = ?`, entryID, userID)
	return err
}
