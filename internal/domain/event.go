package domain

import "time"

// Event is one registration activity. The "current" event is always
// the most recently created row; registrations attach to the event
// current at submission time, not at form-load time.
type Event struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
