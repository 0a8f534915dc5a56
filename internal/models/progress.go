package models

// Progress is one productivity score per user per day, keyed by (UserID, Date).
// Saving a second score for the same day replaces the prior entry.
type Progress struct {
	UserID int64  `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD format
	Score  int    `json:"score"`
	Notes  string `json:"notes,omitempty"`
}
