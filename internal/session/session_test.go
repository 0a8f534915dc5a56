package session

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewManager(t.TempDir())

	id := Identity{UserID: 42, Username: "harsh"}
	s, err := m.Begin(id)
	if err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}
	if s.Token == "" {
		t.Error("expected a session token")
	}
	if !s.ExpiresAt.After(s.IssuedAt) {
		t.Error("session must expire after it is issued")
	}

	got, err := m.Current()
	if err != nil {
		t.Fatalf("failed to read current session: %v", err)
	}
	if got != id {
		t.Errorf("expected identity %+v, got %+v", id, got)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	m := NewManager(t.TempDir())

	_, err := m.Current()
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestExpiredSessionIsCleared(t *testing.T) {
	m := NewManager(t.TempDir())

	if _, err := m.Begin(Identity{UserID: 1, Username: "tanish"}); err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}

	// Rewrite the session file with an expiry in the past
	data, err := os.ReadFile(m.Path())
	if err != nil {
		t.Fatalf("failed to read session file: %v", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("failed to parse session file: %v", err)
	}
	s.ExpiresAt = time.Now().Add(-time.Hour)
	data, err = json.Marshal(s)
	if err != nil {
		t.Fatalf("failed to serialize session: %v", err)
	}
	if err := os.WriteFile(m.Path(), data, 0600); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}

	if _, err := m.Current(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated for expired session, got %v", err)
	}
	if _, err := os.Stat(m.Path()); !os.IsNotExist(err) {
		t.Error("expired session file should have been removed")
	}
}

func TestClear(t *testing.T) {
	m := NewManager(t.TempDir())

	if _, err := m.Begin(Identity{UserID: 7, Username: "bhavishya"}); err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("failed to clear session: %v", err)
	}
	if _, err := m.Current(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated after clear, got %v", err)
	}

	// Clearing again is a no-op
	if err := m.Clear(); err != nil {
		t.Errorf("clearing an absent session should not error: %v", err)
	}
}
