package models

import "time"

// Event is a calendar entry.
type Event struct {
	ID          string
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	AllDay      bool
	CreatedAt   time.Time
}
