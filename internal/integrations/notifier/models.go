package notifier

// BookingCreatedEvent payload webhook-уведомления о создании бронирования
type BookingCreatedEvent struct {
	BookingID       int64    `json:"bookingId"`
	UserID          int64    `json:"userId"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Services        []string `json:"services"`
}

// BookingCancelledEvent payload webhook-уведомления об отмене бронирования
type BookingCancelledEvent struct {
	BookingID int64   `json:"bookingId"`
	UserID    int64   `json:"userId"`
	Reason    *string `json:"reason,omitempty"`
}
