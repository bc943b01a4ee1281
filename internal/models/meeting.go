package models

import "time"

// Meeting is a scheduled meeting owned by the user who created it.
type Meeting struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Time      string    `json:"time"` // Free-form display text, e.g. "Meeting at 10:00AM on May 01, 2024"
	Body      string    `json:"body"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeetingFields holds the parts of a meeting its owner may change.
type MeetingFields struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Body  string `json:"body"`
}

// Apply copies the mutable fields onto m. OwnerID is left untouched.
func (m *Meeting) Apply(f MeetingFields) {
	m.Title = f.Title
	m.Time = f.Time
	m.Body = f.Body
}
