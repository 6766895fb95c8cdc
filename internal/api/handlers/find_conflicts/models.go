package find_conflicts

import (
	bookingModels "github.com/m04kA/EVT-SchedulingService/internal/service/bookings/models"
	findConflicts "github.com/m04kA/EVT-SchedulingService/internal/usecase/find_conflicts"
)

// ConflictsResponse HTTP модель отчета о конфликтах
type ConflictsResponse struct {
	Date      string                           `json:"date"`
	Conflicts []*bookingModels.BookingResponse `json:"conflicts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findConflicts.Response) *ConflictsResponse {
	conflicts := make([]*bookingModels.BookingResponse, len(resp.Conflicts))
	for i, b := range resp.Conflicts {
		conflicts[i] = bookingModels.FromDomainBooking(b)
	}
	return &ConflictsResponse{
		Date:      resp.Date,
		Conflicts: conflicts,
	}
}
