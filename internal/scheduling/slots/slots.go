package slots

import (
	"errors"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// ErrInvalidDate возвращается при пустой или некорректной дате
var ErrInvalidDate = errors.New("slots: invalid date")

// Options параметры генерации слотов на день
type Options struct {
	OpenTime           types.TimeString // Начало окна бронирования (по умолчанию 08:00)
	CloseTime          types.TimeString // Конец окна; CloseTime <= OpenTime означает переход через полночь
	GranularityMinutes int              // Ширина слота в минутах (по умолчанию 15)
	Location           *time.Location   // Часовой пояс расписания (по умолчанию time.Local)
	Now                time.Time        // Текущее время, передается вызывающим кодом
}

func (o Options) withDefaults() Options {
	if o.OpenTime.IsZero() {
		o.OpenTime = domain.DefaultOpenTime
	}
	if o.CloseTime.IsZero() {
		o.CloseTime = domain.DefaultCloseTime
	}
	if o.GranularityMinutes <= 0 {
		o.GranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// FromConfig собирает Options из конфигурации расписания
func FromConfig(cfg *domain.ScheduleConfig, now time.Time) Options {
	return Options{
		OpenTime:           cfg.OpenTime,
		CloseTime:          cfg.CloseTime,
		GranularityMinutes: cfg.SlotGranularityMinutes,
		Location:           cfg.Location(),
		Now:                now,
	}
}

// Generate генерирует упорядоченную последовательность слотов фиксированной ширины
// для указанной даты (формат YYYY-MM-DD).
//
// Слоты считаются в абсолютном времени в заданной локации, поэтому окно с переходом
// через полночь (CloseTime <= OpenTime) дает слоты на двух календарных датах подряд,
// а день перевода часов укороченную или удлиненную последовательность. Это не ошибка.
//
// Если дата совпадает с датой Now, слоты, начинающиеся строго раньше Now, исключаются
// из последовательности целиком, поэтому количество слотов и нумерация Index зависят
// от дня запроса.
//
// Чистая функция: детерминирована для заданных date/opts/Now, без I/O.
func Generate(date string, opts Options) ([]domain.TimeSlot, error) {
	opts = opts.withDefaults()

	if date == "" {
		return nil, ErrInvalidDate
	}

	day, err := time.ParseInLocation(domain.DateFormat, date, opts.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}

	windowStart := opts.OpenTime.At(day, opts.Location)
	windowEnd := opts.CloseTime.At(day, opts.Location)
	if !windowEnd.After(windowStart) {
		// Окно пересекает полночь: закрытие относится к следующей календарной дате
		windowEnd = opts.CloseTime.At(day.AddDate(0, 0, 1), opts.Location)
	}

	granularity := time.Duration(opts.GranularityMinutes) * time.Minute
	isToday := !opts.Now.IsZero() && sameDate(day, opts.Now.In(opts.Location))

	result := make([]domain.TimeSlot, 0, 64)
	for t := windowStart; !t.Add(granularity).After(windowEnd); t = t.Add(granularity) {
		if isToday && t.Before(opts.Now) {
			continue
		}
		result = append(result, domain.TimeSlot{
			Start:     t,
			End:       t.Add(granularity),
			Index:     len(result),
			Available: true,
		})
	}

	return result, nil
}

// Window возвращает абсолютные границы окна бронирования для даты
func Window(date string, opts Options) (time.Time, time.Time, error) {
	opts = opts.withDefaults()

	if date == "" {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	day, err := time.ParseInLocation(domain.DateFormat, date, opts.Location)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}

	start := opts.OpenTime.At(day, opts.Location)
	end := opts.CloseTime.At(day, opts.Location)
	if !end.After(start) {
		end = opts.CloseTime.At(day.AddDate(0, 0, 1), opts.Location)
	}
	return start, end, nil
}

// At возвращает слот по индексу или false, если индекс вне последовательности
func At(seq []domain.TimeSlot, index int) (domain.TimeSlot, bool) {
	if index < 0 || index >= len(seq) {
		return domain.TimeSlot{}, false
	}
	return seq[index], true
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
