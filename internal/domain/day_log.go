package domain

import (
	"time"

	"github.com/google/uuid"
)

// DayLog is the per-user, per-day calorie aggregate that resolved food
// logs are charged against. Only the calorie sum lives in the core; goal
// tracking and reporting belong to the surrounding application.
type DayLog struct {
	UserID         uuid.UUID `json:"user_id"`
	Day            string    `json:"day"`
	LoggedCalories float64   `json:"logged_calories"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DayKey returns the canonical day bucket (UTC, ISO date) for a point in time.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
