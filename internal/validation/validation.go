package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"prodhub/internal/constants"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Error is a field validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, message string) error {
	return &Error{Field: field, Message: message}
}

// Username requires a non-empty name of reasonable length.
func Username(username string) error {
	if username == "" {
		return fieldError("username", "must be provided")
	}
	if len(username) > 64 {
		return fieldError("username", "must be at most 64 characters")
	}
	return nil
}

// Email requires a well-formed email address.
func Email(email string) error {
	if email == "" {
		return fieldError("email", "must be provided")
	}
	if !emailRegexp.MatchString(email) {
		return fieldError("email", "must be a valid email address")
	}
	return nil
}

// Password enforces the bcrypt-compatible length window.
func Password(password string) error {
	if password == "" {
		return fieldError("password", "must be provided")
	}
	if len(password) < 6 {
		return fieldError("password", "must be at least 6 characters")
	}
	if len(password) > 72 {
		return fieldError("password", "must be at most 72 characters")
	}
	return nil
}

// Date requires YYYY-MM-DD.
func Date(field, value string) error {
	if value == "" {
		return fieldError(field, "must be provided")
	}
	if _, err := time.Parse(constants.DateFormat, value); err != nil {
		return fieldError(field, fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", value))
	}
	return nil
}

// Title requires non-blank task titles.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fieldError("title", "must be provided")
	}
	return nil
}

// Priority requires one of low, medium, high.
func Priority(p constants.Priority) error {
	switch p {
	case constants.PriorityLow, constants.PriorityMedium, constants.PriorityHigh:
		return nil
	}
	return fieldError("priority", fmt.Sprintf("invalid priority %q (expected low|medium|high)", p))
}

// Frequency requires one of Daily, Weekly, Monthly.
func Frequency(f constants.Frequency) error {
	switch f {
	case constants.FrequencyDaily, constants.FrequencyWeekly, constants.FrequencyMonthly:
		return nil
	}
	return fieldError("frequency", fmt.Sprintf("invalid frequency %q (expected Daily|Weekly|Monthly)", f))
}

// Score requires an integer in [1,10].
func Score(score int) error {
	if score < constants.MinScore || score > constants.MaxScore {
		return fieldError("score", fmt.Sprintf("must be between %d and %d", constants.MinScore, constants.MaxScore))
	}
	return nil
}

// Mood requires a member of the fixed mood set.
func Mood(m constants.Mood) error {
	for _, known := range constants.Moods {
		if m == known {
			return nil
		}
	}
	return fieldError("mood", fmt.Sprintf("invalid mood %q", m))
}

// Content requires non-blank journal content.
func Content(content string) error {
	if strings.TrimSpace(content) == "" {
		return fieldError("content", "must be provided")
	}
	return nil
}
