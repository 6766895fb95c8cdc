package selection

import "time"

// Gesture классификация жеста касания
type Gesture string

const (
	GestureNone      Gesture = "none"
	GestureTap       Gesture = "tap"
	GestureLongPress Gesture = "long_press"
	GestureDrag      Gesture = "drag"
)

// GestureThresholds пороги классификации жестов.
// Инжектируются через конфигурацию, чтобы их можно было тюнить без правки логики.
type GestureThresholds struct {
	TapMaxDuration       time.Duration // Максимальная длительность tap
	LongPressMinDuration time.Duration // Минимальная длительность long-press
	StillMaxDistance     float64       // Максимальное смещение (px) для tap и long-press
	DragMinDistance      float64       // Смещение (px), после которого жест становится drag
}

// DefaultGestureThresholds возвращает пороги по умолчанию
func DefaultGestureThresholds() GestureThresholds {
	return GestureThresholds{
		TapMaxDuration:       200 * time.Millisecond,
		LongPressMinDuration: 800 * time.Millisecond,
		StillMaxDistance:     10,
		DragMinDistance:      50,
	}
}

// touchTracker накапливает метрики активного касания для классификации жеста.
// Классификация переоценивается на каждом touch-move по суммарным расстоянию
// и времени с момента touch-start, а не сбрасывается на каждое событие.
type touchTracker struct {
	active      bool
	id          int64
	origin      Point
	startedAt   time.Time
	maxDistance float64
	dragged     bool // Смещение однажды превысило DragMinDistance
}

func (t *touchTracker) begin(ev Event) {
	t.active = true
	t.id = ev.TouchID
	t.origin = ev.Point
	t.startedAt = ev.At
	t.maxDistance = 0
	t.dragged = false
}

func (t *touchTracker) reset() {
	*t = touchTracker{}
}

// observe обновляет накопленные метрики по очередному событию активного касания
func (t *touchTracker) observe(ev Event, thresholds GestureThresholds) {
	if !t.active || ev.TouchID != t.id {
		return
	}
	if d := ev.Point.DistanceTo(t.origin); d > t.maxDistance {
		t.maxDistance = d
	}
	if t.maxDistance > thresholds.DragMinDistance {
		// Выход за порог перетаскивания окончателен: обратно в tap/long-press
		// жест уже не переклассифицируется
		t.dragged = true
	}
}

// classify возвращает текущую классификацию жеста на момент at
func (t *touchTracker) classify(at time.Time, thresholds GestureThresholds) Gesture {
	if !t.active {
		return GestureNone
	}
	if t.dragged {
		return GestureDrag
	}

	elapsed := at.Sub(t.startedAt)
	if t.maxDistance < thresholds.StillMaxDistance {
		if elapsed < thresholds.TapMaxDuration {
			return GestureTap
		}
		if elapsed > thresholds.LongPressMinDuration {
			return GestureLongPress
		}
	}
	return GestureDrag
}
