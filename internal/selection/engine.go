package selection

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/availability"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/padding"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/services"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// DefaultMoveInterval минимальный интервал между пересчетами кандидатного
// диапазона на move-событиях, один период обновления дисплея
const DefaultMoveInterval = 16 * time.Millisecond

// Config конфигурация движка выбора слотов
type Config struct {
	Services       []domain.ServiceType
	CustomDuration *int // Явное переопределение длительности (минуты)
	Rules          domain.ServiceRules
	Padding        padding.Config
	Window         slots.Options
	Thresholds     GestureThresholds
	MoveInterval   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Rules == nil {
		c.Rules = domain.DefaultServiceRules()
	}
	if c.Padding == (padding.Config{}) {
		c.Padding = padding.DefaultConfig()
	}
	if c.Thresholds == (GestureThresholds{}) {
		c.Thresholds = DefaultGestureThresholds()
	}
	if c.MoveInterval <= 0 {
		c.MoveInterval = DefaultMoveInterval
	}
	return c
}

// Engine конечный автомат интерактивного выбора временного диапазона.
//
// Превращает сырые pointer/touch события в валидированный непрерывный выбор
// слотов, сверяясь с проверкой доступности перед коммитом. Чистая вычислительная
// машина: без I/O, без привязки к рендерингу, все переходы синхронны внутри
// обработчика входного события. Состояние принадлежит ровно одной интерактивной
// сессии.
type Engine struct {
	cfg     Config
	checker *availability.Checker

	state DragState
	rng   Range

	snapshot      *Snapshot
	staleSnapshot bool // Снимок заменился во время drag; ревалидация на следующем move/end

	// Rate limiter move-событий: поле на экземпляре, а не глобальный таймер,
	// чтобы несколько одновременных сеток не мешали друг другу
	lastMoveAt time.Time

	touch touchTracker
}

// New создает движок выбора в состоянии Idle
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:     cfg,
		checker: availability.NewChecker(cfg.Padding, cfg.Window),
		state:   DragState{Phase: PhaseIdle, AnchorIndex: -1, CurrentIndex: -1},
	}
}

// Phase возвращает текущую фазу
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// State возвращает копию текущего DragState
func (e *Engine) State() DragState {
	return e.state
}

// Range возвращает текущий кандидатный диапазон
func (e *Engine) Range() Range {
	return e.rng
}

// Gesture возвращает текущую классификацию активного касания
func (e *Engine) Gesture(at time.Time) Gesture {
	return e.touch.classify(at, e.cfg.Thresholds)
}

// RequiredDuration возвращает требуемую длительность бронирования (минуты)
// для текущего набора услуг
func (e *Engine) RequiredDuration() (int, error) {
	return services.ResolveDuration(
		e.cfg.Services,
		services.Options{CustomDuration: e.cfg.CustomDuration},
		e.cfg.Rules,
	)
}

// SetServices заменяет набор запрошенных услуг и пересчитывает требуемую
// длительность и валидность текущего кандидатного диапазона
func (e *Engine) SetServices(set []domain.ServiceType, customDuration *int) {
	e.cfg.Services = set
	e.cfg.CustomDuration = customDuration
	if e.state.Phase == PhaseSelecting {
		e.revalidate()
	}
}

// ApplySnapshot применяет новый снимок доступности.
//
// Устаревший снимок (версия не выше текущей) отбрасывается: это и есть механизм
// отмены запоздавших ответов загрузки. Снимок, пришедший посреди drag, не
// инвалидирует выбор немедленно: кандидатный диапазон ревалидируется на следующем
// move/end событии, чтобы выбор не мигал под пальцем.
func (e *Engine) ApplySnapshot(s Snapshot) bool {
	if e.snapshot != nil && s.Version <= e.snapshot.Version {
		return false
	}
	e.snapshot = &s
	if e.state.Phase == PhaseSelecting {
		e.staleSnapshot = true
	}
	return true
}

// Snapshot возвращает текущий снимок доступности
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot
}

// Begin обрабатывает начало взаимодействия (pointer-down / touch-start / клик).
//
// Начало на недоступном слоте принимается, чтобы пользователь получал живую
// визуальную индикацию отказа при перетаскивании, но такой выбор никогда
// не достигнет Committed.
func (e *Engine) Begin(ev Event) {
	if ev.Kind == InputTouch {
		if e.touch.active && ev.TouchID != e.touch.id {
			// Выбором управляет только первая активная точка касания
			return
		}
		e.touch.begin(ev)
	}

	if ev.SlotIndex < 0 {
		return
	}

	e.state = DragState{
		Phase:         PhaseSelecting,
		AnchorIndex:   ev.SlotIndex,
		CurrentIndex:  ev.SlotIndex,
		PointerOrigin: ev.Point,
	}
	e.lastMoveAt = time.Time{}
	e.recompute(ev.At)
}

// Move обрабатывает перемещение указателя в фазе Selecting.
//
// Пересчет кандидатного диапазона выполняется не чаще одного раза в MoveInterval;
// классификация жеста при этом накапливается по каждому событию без пропусков.
func (e *Engine) Move(ev Event) {
	if ev.Kind == InputTouch {
		if !e.touch.active || ev.TouchID != e.touch.id {
			return
		}
		e.touch.observe(ev, e.cfg.Thresholds)
	}

	if e.state.Phase != PhaseSelecting {
		return
	}

	// Long-press не изменяет выбор: жест предназначен для контекстного действия
	if ev.Kind == InputTouch && e.touch.classify(ev.At, e.cfg.Thresholds) == GestureLongPress {
		return
	}

	if !e.lastMoveAt.IsZero() && ev.At.Sub(e.lastMoveAt) < e.cfg.MoveInterval {
		// Сменившийся посреди drag снимок ревалидируется и внутри окна троттлинга,
		// чтобы невалидность не ждала следующего нетроттленного move
		if e.staleSnapshot {
			e.revalidate()
		}
		return
	}

	if ev.SlotIndex >= 0 {
		e.state.CurrentIndex = ev.SlotIndex
	}
	e.recompute(ev.At)
}

// End обрабатывает завершение взаимодействия (pointer-up / touch-end).
//
// Валидный кандидатный диапазон переводит машину в Committed и возвращает
// итоговый Selection; невалидный возвращает машину в Idle без результата.
func (e *Engine) End(ev Event) (Selection, bool) {
	if ev.Kind == InputTouch {
		if !e.touch.active || ev.TouchID != e.touch.id {
			return Selection{}, false
		}
		e.touch.observe(ev, e.cfg.Thresholds)
		gesture := e.touch.classify(ev.At, e.cfg.Thresholds)
		e.touch.reset()

		switch gesture {
		case GestureLongPress:
			// Контекстное действие, не мутация выбора
			e.toIdle()
			return Selection{}, false
		case GestureTap:
			// Tap выбирает ровно слот под исходной точкой касания
			e.state.CurrentIndex = e.state.AnchorIndex
		}
	}

	if e.state.Phase != PhaseSelecting {
		return Selection{}, false
	}

	// Финальная валидация всегда против актуального снимка
	e.revalidate()

	if !e.rng.Valid {
		e.toIdle()
		return Selection{}, false
	}

	sel, ok := e.buildSelection()
	if !ok {
		e.toIdle()
		return Selection{}, false
	}

	e.state.Phase = PhaseCommitted
	return sel, true
}

// Cancel явная отмена (escape, уход указателя с поверхности, teardown компонента).
// Очищает DragState из Selecting или Committed и возвращает машину в Idle
// без эмиссии выбора.
func (e *Engine) Cancel() {
	e.touch.reset()
	e.toIdle()
}

func (e *Engine) toIdle() {
	e.state = DragState{Phase: PhaseIdle, AnchorIndex: -1, CurrentIndex: -1}
	e.rng = Range{}
	e.staleSnapshot = false
}

// recompute пересчитывает кандидатный диапазон и его валидность
func (e *Engine) recompute(at time.Time) {
	e.lastMoveAt = at
	e.revalidate()
}

// revalidate пересчитывает Range по текущим границам и снимку
func (e *Engine) revalidate() {
	e.staleSnapshot = false
	required, err := e.RequiredDuration()
	if err != nil {
		required = 0
	}

	e.rng = Range{
		StartIndex:              e.state.AnchorIndex,
		EndIndex:                e.state.CurrentIndex,
		RequiredDurationMinutes: required,
		Valid:                   false,
	}

	// Недоступность не ошибка: движок только выставляет Valid=false
	e.rng.Valid = e.candidateAvailable()
}

// candidateAvailable проверяет доступность кандидатного диапазона по снимку
func (e *Engine) candidateAvailable() bool {
	snap := e.snapshot
	if snap == nil || snap.Blocked {
		return false
	}

	lo, hi := e.rng.Span()
	first, ok := snap.SlotAt(lo)
	if !ok {
		return false
	}
	last, ok := snap.SlotAt(hi)
	if !ok {
		return false
	}

	// Каждый слот диапазона должен быть доступен в снимке
	for i := lo; i <= hi; i++ {
		slot, ok := snap.SlotAt(i)
		if !ok || !slot.Available {
			return false
		}
	}

	available, err := e.checker.IsAvailable(
		snap.Date,
		first.Start,
		last.End,
		snap.Bookings,
		availability.FullPadding(),
	)
	if err != nil {
		return false
	}
	return available
}

// buildSelection формирует итоговый Selection из текущего диапазона
func (e *Engine) buildSelection() (Selection, bool) {
	snap := e.snapshot
	if snap == nil {
		return Selection{}, false
	}

	lo, hi := e.rng.Span()
	first, ok := snap.SlotAt(lo)
	if !ok {
		return Selection{}, false
	}
	last, ok := snap.SlotAt(hi)
	if !ok {
		return Selection{}, false
	}

	return Selection{
		Date:            snap.Date,
		StartTime:       types.NewTimeString(first.Start),
		EndTime:         types.NewTimeString(last.End),
		Start:           first.Start,
		End:             last.End,
		Services:        e.cfg.Services,
		DurationMinutes: int(last.End.Sub(first.Start) / time.Minute),
	}, true
}
