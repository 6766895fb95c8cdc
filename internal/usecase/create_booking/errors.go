package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidTimeRange возвращается при некорректном диапазоне времени
	ErrInvalidTimeRange = errors.New("invalid booking time range")

	// ErrNoServicesSpecified возвращается при пустом наборе услуг
	ErrNoServicesSpecified = errors.New("no services specified")

	// ErrUnknownService возвращается при неизвестной услуге в наборе
	ErrUnknownService = errors.New("unknown service")

	// ErrDateBlocked возвращается, когда дата полностью заблокирована
	ErrDateBlocked = errors.New("date is blocked for booking")

	// ErrSlotNotAvailable возвращается, когда запрошенный диапазон занят
	// с учетом паддинга существующих бронирований
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// ConflictError детализирует ErrSlotNotAvailable списком активных бронирований,
// чей заявленный (непаддированный) диапазон пересекает запрошенный. Список может
// быть пустым, если диапазон занят только паддингом соседнего бронирования
type ConflictError struct {
	Conflicts []*domain.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting booking(s)", ErrSlotNotAvailable, len(e.Conflicts))
}

// Unwrap сохраняет проверку errors.Is(err, ErrSlotNotAvailable) на вызывающей стороне
func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}
