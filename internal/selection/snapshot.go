package selection

import (
	"github.com/m04kA/EVT-SchedulingService/internal/domain"
)

// Snapshot версионированный снимок данных доступности на один день.
// Снимки производятся внешним слоем загрузки; движок выбора работает только
// с уже загруженным снимком и потому никогда не выполняет I/O.
type Snapshot struct {
	// Version монотонно возрастающий идентификатор запроса загрузки,
	// который произвел снимок. Используется для отбрасывания устаревших
	// ответов при навигации по календарю.
	Version  uint64
	Date     string
	Slots    []domain.TimeSlot
	Bookings []*domain.Booking
	Blocked  bool // Дата полностью заблокирована: ноль доступных слотов
}

// SlotAt возвращает слот снимка по индексу
func (s *Snapshot) SlotAt(index int) (domain.TimeSlot, bool) {
	if s == nil || index < 0 || index >= len(s.Slots) {
		return domain.TimeSlot{}, false
	}
	return s.Slots[index], true
}
