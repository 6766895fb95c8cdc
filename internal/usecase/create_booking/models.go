package create_booking

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64
	Date      string               // Дата в формате YYYY-MM-DD
	StartTime types.TimeString     // Время начала (HH:MM)
	Services  []domain.ServiceType // Набор запрошенных услуг

	// CustomDuration явное переопределение длительности в минутах.
	// Без него длительность равна максимуму дефолтов запрошенных услуг
	CustomDuration *int

	Notes *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Services        []domain.ServiceType
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
