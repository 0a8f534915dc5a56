package models

import (
	"time"

	"prodhub/internal/constants"
)

// JournalEntry is a free-text entry tagged with a mood and a date. Entries are
// append-only except for explicit deletes; one user may have many entries per day.
type JournalEntry struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	EntryDate string         `json:"entry_date"` // YYYY-MM-DD format
	Content   string         `json:"content"`
	Mood      constants.Mood `json:"mood"`
	CreatedAt time.Time      `json:"created_at"`
}
