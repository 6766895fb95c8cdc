package aggregate

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
)

// Run максимальная последовательность соседних слотов с одинаковым флагом доступности
type Run struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Duration возвращает длительность run
func (r Run) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Merge схлопывает соседние слоты с одинаковым флагом Available в runs.
//
// Инварианты: Merge идемпотентен относительно покрытия (повторное применение
// ничего не меняет) и сохраняет суммарное покрытие времени: сумма длительностей
// runs равна сумме длительностей входных слотов.
func Merge(seq []domain.TimeSlot) []Run {
	if len(seq) == 0 {
		return []Run{}
	}

	runs := make([]Run, 0, len(seq))
	current := Run{
		Start:     seq[0].Start,
		End:       seq[0].End,
		Available: seq[0].Available,
	}

	for _, slot := range seq[1:] {
		// Соседний слот с тем же статусом продлевает текущий run;
		// разрыв в покрытии или смена статуса начинают новый
		if slot.Available == current.Available && slot.Start.Equal(current.End) {
			current.End = slot.End
			continue
		}
		runs = append(runs, current)
		current = Run{Start: slot.Start, End: slot.End, Available: slot.Available}
	}

	return append(runs, current)
}

// FindConflicts возвращает бронирования, чей непаддированный диапазон
// [startTime, endTime) пересекает кандидатный диапазон [candStart, candEnd).
//
// В отличие от проверки доступности паддинг здесь не учитывается: результат
// используется для человекочитаемого отчета о конфликтах, а не для решения
// о возможности бронирования. Порядок входного списка сохраняется.
func FindConflicts(
	candStart, candEnd time.Time,
	bookings []*domain.Booking,
	loc *time.Location,
) []*domain.Booking {
	if loc == nil {
		loc = time.Local
	}

	conflicts := make([]*domain.Booking, 0)
	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}
		start, end := booking.EffectiveRange(loc)
		if candStart.Before(end) && start.Before(candEnd) {
			conflicts = append(conflicts, booking)
		}
	}
	return conflicts
}
