package models

import "prodhub/internal/constants"

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Deadline    string               `json:"deadline"` // YYYY-MM-DD format
	Priority    constants.Priority   `json:"priority"`
	Status      constants.TaskStatus `json:"status"`
}

// StatusFilter selects which tasks a listing returns.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterCompleted StatusFilter = "completed"
)
