package domain

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByAdmin BookingStatus = "cancelled_by_admin"
	StatusNoShow           BookingStatus = "no_show"
)

// Booking represents an event booking in the system
type Booking struct {
	ID              int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Services        []ServiceType
	Status          BookingStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking participates in conflict checks
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByAdmin &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can still be updated
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByAdmin
}

// CrossesMidnight returns true if the booking ends on the following calendar date
// (an end time equal to or before the start time means the event runs past midnight)
func (b *Booking) CrossesMidnight() bool {
	return !b.EndTime.IsAfter(b.StartTime)
}

// EffectiveRange returns the absolute [start, end) timestamps of the booking in loc.
// Cross-midnight bookings end on the following calendar date, which keeps interval
// comparisons correct at day boundaries.
func (b *Booking) EffectiveRange(loc *time.Location) (time.Time, time.Time) {
	start := b.StartTime.At(b.Date, loc)
	end := b.EndTime.At(b.Date, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// HasService returns true if the booking includes the given service
func (b *Booking) HasService(s ServiceType) bool {
	for _, svc := range b.Services {
		if svc == s {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID          *int64         // Фильтр по пользователю (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show бронирования
}

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при проверке доступности слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByAdmin,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
