package domain

import "time"

// Event is a scheduled meeting or milestone on a project calendar.
// Attendees holds user IDs; it is loaded alongside the event row.
type Event struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"` // "HH:MM", local to the team
	DurationMin int       `json:"durationMin"`
	Type        EventType `json:"type"`
	CreatedBy   string    `json:"createdBy"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"createdAt"`
}
