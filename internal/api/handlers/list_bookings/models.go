package list_bookings

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest парсит query параметры в модель сервиса
func ToServiceRequest(fromStr, toStr, statusStr, includeInactiveStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	req.IncludeInactive = includeInactiveStr == "true"

	return req, nil
}
