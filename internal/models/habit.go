package models

import "prodhub/internal/constants"

// Habit is a recurring practice tracked with a daily-debounced streak counter.
// Streak counts distinct calendar days the habit has been checked in and only
// ever moves forward; LastChecked is monotonically non-decreasing.
type Habit struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"user_id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Frequency   constants.Frequency `json:"frequency"`
	StartDate   string              `json:"start_date"`   // YYYY-MM-DD format
	LastChecked string              `json:"last_checked"` // YYYY-MM-DD format
	Streak      int                 `json:"streak"`
}

// CheckInResult reports the outcome of a habit check-in.
type CheckInResult string

const (
	// CheckedIn means the streak advanced and LastChecked moved to today.
	CheckedIn CheckInResult = "checked_in"
	// AlreadyCheckedToday means the habit was already checked in on the given
	// day and no state changed.
	AlreadyCheckedToday CheckInResult = "already_checked_today"
)
