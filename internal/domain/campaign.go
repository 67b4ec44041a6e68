package domain

import "time"

// Campaign is a fundraising effort with a running balance. The balance
// starts at Allocation and only moves through donation inserts and
// compensating credits on donation deletion; it never goes negative.
type Campaign struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Code             string    `json:"code"`
	Allocation       int64     `json:"allocation"`
	RemainingBalance int64     `json:"remaining_balance"`
	CreatedAt        time.Time `json:"created_at"`
}
