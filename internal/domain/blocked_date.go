package domain

import "time"

// BlockedDate marks a calendar date as fully unavailable for booking,
// regardless of existing reservations on that date
type BlockedDate struct {
	ID        int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}
