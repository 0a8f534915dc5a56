package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/lib/pq"

	"prodhub/internal/migration"
	"prodhub/internal/models"
	"prodhub/migrations"
)

// PostgresStore is the shared-server alternative to the SQLite store,
// selected by a postgres:// connection string.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

// NewPostgresStore creates a store for the given connection string. The
// connection is not opened until Init or Load.
func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

func (s *PostgresStore) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.validateSchemaVersion()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Reset drops the application tables and reinitializes the schema.
func (s *PostgresStore) Reset() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	_, err := s.db.Exec(`
		DROP TABLE IF EXISTS journal_entries, progress, habits, tasks, users, schema_version CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Path() string {
	return s.connStr
}

func (s *PostgresStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *PostgresStore) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	return migration.NewRunner(s.db, subFS).ValidateVersion()
}

func isPostgresUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Users

func (s *PostgresStore) CreateUser(username, email string, passwordHash []byte) (models.User, error) {
	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := s.db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		username, email, string(passwordHash)).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isPostgresUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}

	return u, nil
}

func (s *PostgresStore) GetUserByUsername(username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = $1`, username))
}

func (s *PostgresStore) GetUserByID(id int64) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var hash string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &hash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	u.PasswordHash = []byte(hash)
	return &u, nil
}

// Tasks

func (s *PostgresStore) AddTask(task models.Task) (models.Task, error) {
	err := s.db.QueryRow(`
		INSERT INTO tasks (user_id, title, description, deadline, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		task.UserID, task.Title, task.Description, task.Deadline, task.Priority, task.Status).Scan(&task.ID)
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *PostgresStore) GetTasks(userID int64, filter models.StatusFilter) ([]models.Task, error) {
	query := `
		SELECT id, user_id, title, description, to_char(deadline, 'YYYY-MM-DD'), priority, status
		FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if filter != models.FilterAll {
		query += " AND status = $2"
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

func (s *PostgresStore) CompleteTask(userID, taskID int64) error {
	_, err := s.db.Exec(`
		UPDATE tasks SET status = 'completed' WHERE id = $1 AND user_id = $2`,
		taskID, userID)
	return err
}

func (s *PostgresStore) ReplaceTask(userID int64, task models.Task) (models.Task, error) {
	res, err := s.db.Exec(`
		UPDATE tasks SET title = $1, description = $2, deadline = $3, priority = $4, status = $5
		WHERE id = $6 AND user_id = $7`,
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

func (s *PostgresStore) DeleteTask(userID, taskID int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	return err
}

func (s *PostgresStore) CountTasks(userID int64, filter models.StatusFilter) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE user_id = $1`
	args := []any{userID}
	if filter != models.FilterAll {
		query += " AND status = $2"
		args = append(args, string(filter))
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Habits

func (s *PostgresStore) AddHabit(habit models.Habit) (models.Habit, error) {
	err := s.db.QueryRow(`
		INSERT INTO habits (user_id, name, description, frequency, start_date, last_checked, streak)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		habit.UserID, habit.Name, habit.Description, habit.Frequency,
		habit.StartDate, habit.LastChecked, habit.Streak).Scan(&habit.ID)
	if err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *PostgresStore) GetHabits(userID int64) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, description, frequency,
		       to_char(start_date, 'YYYY-MM-DD'), to_char(last_checked, 'YYYY-MM-DD'), streak
		FROM habits WHERE user_id = $1 ORDER BY streak DESC, id`, userID)
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

func (s *PostgresStore) CheckInHabit(userID, habitID int64, today string) (models.CheckInResult, error) {
	res, err := s.db.Exec(`
		UPDATE habits SET last_checked = $1, streak = streak + 1
		WHERE id = $2 AND user_id = $3 AND last_checked < $1`,
		today, habitID, userID)
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

	var lastChecked string
	err = s.db.QueryRow(`
		SELECT to_char(last_checked, 'YYYY-MM-DD') FROM habits WHERE id = $1 AND user_id = $2`,
		habitID, userID).Scan(&lastChecked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return models.AlreadyCheckedToday, nil
}

func (s *PostgresStore) DeleteHabit(userID, habitID int64) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	return err
}

// Progress

func (s *PostgresStore) SaveProgress(progress models.Progress) (models.Progress, error) {
	_, err := s.db.Exec(`
		INSERT INTO progress (user_id, date, score, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE SET
			score = EXCLUDED.score,
			notes = EXCLUDED.notes`,
		progress.UserID, progress.Date, progress.Score, progress.Notes)
	if err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}

func (s *PostgresStore) GetProgressHistory(userID int64) ([]models.Progress, error) {
	rows, err := s.db.Query(`
		SELECT user_id, to_char(date, 'YYYY-MM-DD'), score, notes
		FROM progress WHERE user_id = $1 ORDER BY date`, userID)
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

func (s *PostgresStore) GetAverageScore(userID int64) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT AVG(score) FROM progress WHERE user_id = $1`, userID).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, ErrNoData
	}
	return avg.Float64, nil
}

// Journal

func (s *PostgresStore) AddJournalEntry(entry models.JournalEntry) (models.JournalEntry, error) {
	err := s.db.QueryRow(`
		INSERT INTO journal_entries (user_id, entry_date, content, mood)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		entry.UserID, entry.EntryDate, entry.Content, entry.Mood).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

func (s *PostgresStore) GetJournalEntries(userID int64) ([]models.JournalEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), content, mood, created_at
		FROM journal_entries WHERE user_id = $1
		ORDER BY entry_date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Content, &e.Mood, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *PostgresStore) DeleteJournalEntry(userID, entryID int64) error {
	_, err := s.db.Exec(`DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	return err
}
