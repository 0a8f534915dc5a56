package constants

import "time"

// Priority represents the urgency level of a task
type Priority string

// TaskStatus represents the completion state of a task
type TaskStatus string

// Frequency represents how often a habit is meant to be practiced
type Frequency string

// Mood represents the mood recorded with a journal entry
type Mood string

const (
	AppName            = "prodhub"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "gemini-api-key"
	DefaultConfigPath  = "~/.config/prodhub/prodhub.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// SessionFileName is the session file stored next to the database
	SessionFileName = "session.json"

	// SessionTTL is how long a login remains valid
	SessionTTL = 24 * time.Hour

	// Task priorities
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	// Task statuses
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"

	// Habit frequencies
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"

	// Progress score bounds
	MinScore = 1
	MaxScore = 10

	// Seed user created by 'prodhub db init --seed'
	SeedUsername = "test"
	SeedEmail    = "test@example.com"
	SeedPassword = "test123"

	// Assistant defaults
	DefaultGeminiModel = "gemini-2.0-flash"
	// AssistantContextReplies is how many trailing assistant replies are folded
	// into the prompt as conversation context.
	AssistantContextReplies = 2
)

// Moods is the fixed ordered set of journal moods, worst to best.
var Moods = []Mood{MoodAwful, MoodMeh, MoodGood, MoodGreat, MoodAmazing}

const (
	MoodAwful   Mood = "awful"
	MoodMeh     Mood = "meh"
	MoodGood    Mood = "good"
	MoodGreat   Mood = "great"
	MoodAmazing Mood = "amazing"
)
