package selection

import (
	"math"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// Phase фаза интерактивной сессии выбора слотов
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSelecting Phase = "selecting"
	PhaseCommitted Phase = "committed"
)

// Point координаты указателя на интерактивной поверхности
type Point struct {
	X float64
	Y float64
}

// DistanceTo возвращает евклидово расстояние до другой точки
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// DragState эфемерное состояние одной интерактивной сессии.
// Создается при начале взаимодействия, уничтожается при коммите или отмене.
// Никогда не персистится.
type DragState struct {
	Phase         Phase
	AnchorIndex   int
	CurrentIndex  int
	PointerOrigin Point
}

// Range кандидатный диапазон выбора между якорным и текущим слотом.
// Valid пересчитывается проверкой доступности при каждом изменении границ.
type Range struct {
	StartIndex              int
	EndIndex                int
	RequiredDurationMinutes int
	Valid                   bool
}

// Span возвращает границы диапазона в порядке возрастания.
// Перетаскивание назад за якорь легально и просто меняет местами начало и конец.
func (r Range) Span() (int, int) {
	if r.StartIndex <= r.EndIndex {
		return r.StartIndex, r.EndIndex
	}
	return r.EndIndex, r.StartIndex
}

// SlotCount возвращает количество слотов в диапазоне (включительно)
func (r Range) SlotCount() int {
	lo, hi := r.Span()
	return hi - lo + 1
}

// Selection результат успешного коммита выбора.
// Передается внешнему флоу создания бронирования.
type Selection struct {
	Date            string
	StartTime       types.TimeString
	EndTime         types.TimeString
	Start           time.Time
	End             time.Time
	Services        []domain.ServiceType
	DurationMinutes int
}

// InputKind тип источника входного события
type InputKind int

const (
	InputPointer InputKind = iota
	InputTouch
)

// Event нормализованное входное событие (pointer или touch)
type Event struct {
	Kind      InputKind
	TouchID   int64 // Идентификатор точки касания; для pointer не используется
	SlotIndex int   // Индекс слота под координатами; -1, если указатель вне сетки
	Point     Point
	At        time.Time
}
