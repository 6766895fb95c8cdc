package create_booking

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	bookingModels "github.com/m04kA/EVT-SchedulingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/EVT-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string   `json:"date"`      // "2026-09-12"
	StartTime string   `json:"startTime"` // "18:00"
	Services  []string `json:"services"`  // ["dj", "karaoke"]

	// CustomDurationMinutes явная длительность; без нее берется максимум
	// дефолтных длительностей запрошенных услуг
	CustomDurationMinutes *int    `json:"customDurationMinutes,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Services        []string  `json:"services"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ConflictResponse HTTP тело ответа 409: причина отказа и список бронирований,
// чей заявленный диапазон пересекает запрошенный
type ConflictResponse struct {
	Error     string                           `json:"error"`
	Conflicts []*bookingModels.BookingResponse `json:"conflicts"`
}

// NewConflictResponse собирает тело 409 из доменных бронирований
func NewConflictResponse(message string, conflicts []*domain.Booking) *ConflictResponse {
	out := make([]*bookingModels.BookingResponse, len(conflicts))
	for i, b := range conflicts {
		out[i] = bookingModels.FromDomainBooking(b)
	}
	return &ConflictResponse{Error: message, Conflicts: out}
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	services := make([]domain.ServiceType, len(r.Services))
	for i, raw := range r.Services {
		// Неизвестные услуги отсеет use case; здесь только приведение типа
		services[i] = domain.ServiceType(raw)
	}

	return &createBooking.Request{
		UserID:         userID,
		Date:           r.Date,
		StartTime:      startTime,
		Services:       services,
		CustomDuration: r.CustomDurationMinutes,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]string, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = string(s)
	}

	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Services:        services,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
