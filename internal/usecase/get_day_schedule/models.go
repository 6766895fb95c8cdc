package get_day_schedule

import (
	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/aggregate"
)

// Request модель запроса расписания на день
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// Response модель ответа с расписанием на день
type Response struct {
	Date          string
	Blocked       bool    // Дата полностью заблокирована администратором
	BlockedReason *string // Причина блокировки, если указана

	Slots []domain.TimeSlot // Слоты дня с проставленной доступностью
	Runs  []aggregate.Run   // Схлопнутые отрезки одинаковой доступности

	// Bookings активные бронирования, учтенные при расчете доступности.
	// В HTTP-ответ не сериализуются; нужны слою selection-сессий для снимков
	Bookings []*domain.Booking
}
