package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"prodhub/internal/constants"
)

// ErrNotAuthenticated is returned when no valid session exists.
var ErrNotAuthenticated = errors.New("not logged in, run 'prodhub login' first")

// Identity is the authenticated user for the current interactive session.
// Every store operation takes its user id from an Identity passed explicitly;
// nothing reads ambient global state.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Session is the persisted login state.
type Session struct {
	Identity  Identity  `json:"identity"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager reads and writes the session file for one config directory.
type Manager struct {
	path string
}

// NewManager creates a manager for the session file in dir.
func NewManager(dir string) *Manager {
	return &Manager{path: filepath.Join(dir, constants.SessionFileName)}
}

// Begin creates and persists a fresh session for the given identity.
func (m *Manager) Begin(id Identity) (Session, error) {
	now := time.Now()
	s := Session{
		Identity:  id,
		Token:     uuid.New().String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(constants.SessionTTL),
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return Session{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return Session{}, fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return Session{}, fmt.Errorf("failed to write session: %w", err)
	}

	return s, nil
}

// Current returns the active identity, or ErrNotAuthenticated if there is no
// session file or the session has expired. Expired sessions are removed.
func (m *Manager) Current() (Identity, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, ErrNotAuthenticated
		}
		return Identity{}, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Identity{}, fmt.Errorf("failed to parse session: %w", err)
	}

	if time.Now().After(s.ExpiresAt) {
		_ = m.Clear()
		return Identity{}, ErrNotAuthenticated
	}

	return s.Identity, nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (m *Manager) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Path returns the session file location.
func (m *Manager) Path() string {
	return m.path
}
