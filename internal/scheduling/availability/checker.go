package availability

import (
	"errors"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/padding"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
)

// ErrInvalidTimeRange возвращается при некорректной или перевернутой паре start/end.
// Это ошибка валидации входных данных; недоступность слота ошибкой не является
// и всегда выражается булевым результатом.
var ErrInvalidTimeRange = errors.New("availability: invalid time range")

// CheckOptions управляет учетом монтажа/демонтажа при расчете занятого окна.
// Буфер между бронированиями применяется всегда.
type CheckOptions struct {
	IncludeSetup     bool
	IncludeBreakdown bool
}

// FullPadding опции проверки при создании бронирования: монтаж и демонтаж учитываются
func FullPadding() CheckOptions {
	return CheckOptions{IncludeSetup: true, IncludeBreakdown: true}
}

// BufferOnly опции простой проверки пересечения: только симметричный буфер
func BufferOnly() CheckOptions {
	return CheckOptions{}
}

// Checker проверяет доступность кандидатного временного диапазона
// с учетом существующих бронирований и правил паддинга
type Checker struct {
	padding padding.Config
	window  slots.Options
}

// NewChecker создает новый checker
func NewChecker(p padding.Config, w slots.Options) *Checker {
	return &Checker{padding: p, window: w}
}

// IsAvailable возвращает true, если кандидатный диапазон [candStart, candEnd)
// не пересекает эффективное занятое окно ни одного активного бронирования на дату.
//
// Эффективное занятое окно бронирования: [start - setup - buffer, end + breakdown + buffer]
// при включенных IncludeSetup/IncludeBreakdown; без них применяется только буфер.
// Интервалы полуоткрытые: кандидат, заканчивающийся ровно в момент начала занятого
// окна, доступен.
//
// Сравнение идет по абсолютным временным меткам, поэтому бронирования с переходом
// через полночь не дают ложных результатов на границе дат.
//
// Кандидат за пределами окна бронирования считается недоступным (false), это не ошибка:
// запрос на нерабочие часы корректен по форме, просто не может быть забронирован.
func (c *Checker) IsAvailable(
	date string,
	candStart, candEnd time.Time,
	bookings []*domain.Booking,
	opts CheckOptions,
) (bool, error) {
	if candStart.IsZero() || candEnd.IsZero() || !candEnd.After(candStart) {
		return false, ErrInvalidTimeRange
	}

	windowStart, windowEnd, err := slots.Window(date, c.window)
	if err != nil {
		return false, err
	}

	if candStart.Before(windowStart) || candEnd.After(windowEnd) {
		return false, nil
	}

	loc := c.window.Location
	if loc == nil {
		loc = time.Local
	}

	for _, booking := range bookings {
		occStart, occEnd := c.occupiedWindow(booking, loc, opts)
		if occStart.IsZero() {
			continue
		}
		if candStart.Before(occEnd) && occStart.Before(candEnd) {
			return false, nil
		}
	}

	return true, nil
}

// Annotate возвращает копию последовательности слотов с проставленным флагом
// Available по каждому слоту. Слоты, попадающие в эффективное занятое окно
// любого активного бронирования, помечаются недоступными.
func (c *Checker) Annotate(
	seq []domain.TimeSlot,
	bookings []*domain.Booking,
	opts CheckOptions,
) []domain.TimeSlot {
	loc := c.window.Location
	if loc == nil {
		loc = time.Local
	}

	windows := make([][2]time.Time, 0, len(bookings))
	for _, booking := range bookings {
		occStart, occEnd := c.occupiedWindow(booking, loc, opts)
		if occStart.IsZero() {
			continue
		}
		windows = append(windows, [2]time.Time{occStart, occEnd})
	}

	out := make([]domain.TimeSlot, len(seq))
	for i, slot := range seq {
		slot.Available = true
		for _, w := range windows {
			if slot.Start.Before(w[1]) && w[0].Before(slot.End) {
				slot.Available = false
				break
			}
		}
		out[i] = slot
	}
	return out
}

// occupiedWindow возвращает эффективное занятое окно активного бронирования
// в абсолютном времени; для неактивного бронирования возвращает нулевые значения
func (c *Checker) occupiedWindow(
	booking *domain.Booking,
	loc *time.Location,
	opts CheckOptions,
) (time.Time, time.Time) {
	if booking == nil || !booking.IsActive() {
		return time.Time{}, time.Time{}
	}

	start, end := booking.EffectiveRange(loc)

	leadMinutes := c.padding.Buffer()
	if opts.IncludeSetup {
		leadMinutes += c.padding.Setup(booking.Services)
	}

	trailMinutes := c.padding.Buffer()
	if opts.IncludeBreakdown {
		trailMinutes += c.padding.Breakdown(booking.Services)
	}

	return start.Add(-time.Duration(leadMinutes) * time.Minute),
		end.Add(time.Duration(trailMinutes) * time.Minute)
}
