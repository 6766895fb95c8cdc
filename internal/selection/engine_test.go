package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

const testDate = "2026-09-10"

var t0 = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, services ...domain.ServiceType) *Engine {
	t.Helper()
	if len(services) == 0 {
		services = []domain.ServiceType{domain.ServiceDJ}
	}
	return New(Config{
		Services: services,
		Window:   slots.Options{Location: time.UTC},
	})
}

// testSnapshot снимок дня со всеми доступными слотами, кроме перечисленных
func testSnapshot(t *testing.T, version uint64, unavailable ...int) Snapshot {
	t.Helper()
	seq, err := slots.Generate(testDate, slots.Options{Location: time.UTC})
	require.NoError(t, err)
	for _, idx := range unavailable {
		seq[idx].Available = false
	}
	return Snapshot{Version: version, Date: testDate, Slots: seq}
}

func pointerEvent(slotIndex int, at time.Time) Event {
	return Event{Kind: InputPointer, SlotIndex: slotIndex, At: at}
}

func touchEvent(id int64, slotIndex int, p Point, at time.Time) Event {
	return Event{Kind: InputTouch, TouchID: id, SlotIndex: slotIndex, Point: p, At: at}
}

func TestEngineStartsIdle(t *testing.T) {
	e := newTestEngine(t)
	require.Equal(t, PhaseIdle, e.Phase())
	require.Equal(t, -1, e.State().AnchorIndex)
	require.Equal(t, -1, e.State().CurrentIndex)
}

func TestPointerDragCommit(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(10, t0))
	require.Equal(t, PhaseSelecting, e.Phase())
	require.Equal(t, 10, e.State().AnchorIndex)

	e.Move(pointerEvent(14, t0.Add(50*time.Millisecond)))
	require.Equal(t, 14, e.State().CurrentIndex)

	// Перетаскивание назад сжимает диапазон, якорь не двигается
	e.Move(pointerEvent(12, t0.Add(100*time.Millisecond)))
	require.Equal(t, 10, e.State().AnchorIndex)
	require.Equal(t, 12, e.State().CurrentIndex)
	require.True(t, e.Range().Valid)
	require.Equal(t, 3, e.Range().SlotCount())

	sel, ok := e.End(pointerEvent(12, t0.Add(150*time.Millisecond)))
	require.True(t, ok)
	require.Equal(t, PhaseCommitted, e.Phase())

	// Слот 10 начинается в 10:30, слот 12 заканчивается в 11:15
	require.Equal(t, testDate, sel.Date)
	require.Equal(t, types.TimeString("10:30"), sel.StartTime)
	require.Equal(t, types.TimeString("11:15"), sel.EndTime)
	require.Equal(t, 45, sel.DurationMinutes)
	require.Equal(t, []domain.ServiceType{domain.ServiceDJ}, sel.Services)
}

func TestBackwardDragNormalizesSpan(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(12, t0))
	e.Move(pointerEvent(10, t0.Add(50*time.Millisecond)))

	lo, hi := e.Range().Span()
	require.Equal(t, 10, lo)
	require.Equal(t, 12, hi)

	sel, ok := e.End(pointerEvent(10, t0.Add(100*time.Millisecond)))
	require.True(t, ok)
	require.Equal(t, types.TimeString("10:30"), sel.StartTime)
	require.Equal(t, types.TimeString("11:15"), sel.EndTime)
}

func TestBeginOnUnavailableSlotNeverCommits(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1, 10)))

	// Начало на недоступном слоте принимается для живой индикации отказа
	e.Begin(pointerEvent(10, t0))
	require.Equal(t, PhaseSelecting, e.Phase())
	require.False(t, e.Range().Valid)

	_, ok := e.End(pointerEvent(10, t0.Add(50*time.Millisecond)))
	require.False(t, ok)
	require.Equal(t, PhaseIdle, e.Phase())
}

func TestDragOverUnavailableSlotInvalid(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1, 12)))

	e.Begin(pointerEvent(10, t0))
	require.True(t, e.Range().Valid)

	// Диапазон 10..14 содержит недоступный слот 12
	e.Move(pointerEvent(14, t0.Add(50*time.Millisecond)))
	require.False(t, e.Range().Valid)

	// Возврат к свободной части снова валиден
	e.Move(pointerEvent(11, t0.Add(100*time.Millisecond)))
	require.True(t, e.Range().Valid)
}

func TestCandidateCheckedAgainstBookings(t *testing.T) {
	e := newTestEngine(t)

	snap := testSnapshot(t, 1)
	// Бронирование 14:00-18:00 дает занятое окно [12:30, 19:00);
	// слоты снимка нарочно оставлены доступными, чтобы проверить второй рубеж
	snap.Bookings = []*domain.Booking{{
		ID:        7,
		Date:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "18:00",
		Services:  []domain.ServiceType{domain.ServiceDJ},
		Status:    domain.StatusConfirmed,
	}}
	require.True(t, e.ApplySnapshot(snap))

	// Слот 22 = 13:30-13:45, внутри занятого окна
	e.Begin(pointerEvent(22, t0))
	require.False(t, e.Range().Valid)

	e.Cancel()

	// Слот 0 = 08:00-08:15, задолго до занятого окна
	e.Begin(pointerEvent(0, t0))
	require.True(t, e.Range().Valid)
}

func TestMoveThrottled(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(5, t0))

	// Move раньше MoveInterval после последнего пересчета игнорируется
	e.Move(pointerEvent(8, t0.Add(5*time.Millisecond)))
	require.Equal(t, 5, e.State().CurrentIndex)

	e.Move(pointerEvent(8, t0.Add(30*time.Millisecond)))
	require.Equal(t, 8, e.State().CurrentIndex)
}

func TestMoveIgnoredWhenIdle(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Move(pointerEvent(5, t0))
	require.Equal(t, PhaseIdle, e.Phase())

	_, ok := e.End(pointerEvent(5, t0.Add(50*time.Millisecond)))
	require.False(t, ok)
}

func TestBeginOutsideGridIgnored(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(-1, t0))
	require.Equal(t, PhaseIdle, e.Phase())
}

func TestTouchTapSelectsAnchorSlotOnly(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(touchEvent(1, 10, Point{X: 0, Y: 0}, t0))
	// Смещение меньше порога покоя: слот под пальцем сменился, жест остался tap
	e.Move(touchEvent(1, 14, Point{X: 4, Y: 3}, t0.Add(50*time.Millisecond)))
	require.Equal(t, 14, e.State().CurrentIndex)

	sel, ok := e.End(touchEvent(1, 14, Point{X: 4, Y: 3}, t0.Add(100*time.Millisecond)))
	require.True(t, ok)

	// Tap выбирает ровно якорный слот
	require.Equal(t, types.TimeString("10:30"), sel.StartTime)
	require.Equal(t, types.TimeString("10:45"), sel.EndTime)
	require.Equal(t, 15, sel.DurationMinutes)
}

func TestTouchLongPressDoesNotMutateSelection(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(touchEvent(1, 10, Point{X: 0, Y: 0}, t0))

	// Move после порога long-press не трогает границы выбора
	e.Move(touchEvent(1, 14, Point{X: 2, Y: 0}, t0.Add(850*time.Millisecond)))
	require.Equal(t, 10, e.State().CurrentIndex)

	// Long-press завершает взаимодействие без эмиссии выбора
	_, ok := e.End(touchEvent(1, 10, Point{X: 2, Y: 0}, t0.Add(900*time.Millisecond)))
	require.False(t, ok)
	require.Equal(t, PhaseIdle, e.Phase())
}

func TestTouchBetweenThresholdsIsDrag(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(touchEvent(1, 10, Point{X: 0, Y: 0}, t0))

	// Между порогами tap и long-press без смещения жест трактуется как drag
	require.Equal(t, GestureDrag, e.Gesture(t0.Add(500*time.Millisecond)))

	sel, ok := e.End(touchEvent(1, 10, Point{X: 0, Y: 0}, t0.Add(500*time.Millisecond)))
	require.True(t, ok)
	require.Equal(t, 15, sel.DurationMinutes)
}

func TestTouchDragClassificationIsSticky(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(touchEvent(1, 10, Point{X: 0, Y: 0}, t0))
	e.Move(touchEvent(1, 14, Point{X: 60, Y: 0}, t0.Add(50*time.Millisecond)))
	require.Equal(t, GestureDrag, e.Gesture(t0.Add(50*time.Millisecond)))

	// Возврат к исходной точке не переклассифицирует жест обратно в tap
	e.Move(touchEvent(1, 11, Point{X: 5, Y: 0}, t0.Add(100*time.Millisecond)))
	require.Equal(t, GestureDrag, e.Gesture(t0.Add(100*time.Millisecond)))

	sel, ok := e.End(touchEvent(1, 11, Point{X: 5, Y: 0}, t0.Add(150*time.Millisecond)))
	require.True(t, ok)
	require.Equal(t, 30, sel.DurationMinutes)
}

func TestSecondTouchIgnored(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(touchEvent(1, 10, Point{X: 0, Y: 0}, t0))

	// Выбором управляет только первая активная точка касания
	e.Begin(touchEvent(2, 20, Point{X: 300, Y: 0}, t0.Add(20*time.Millisecond)))
	require.Equal(t, 10, e.State().AnchorIndex)

	e.Move(touchEvent(2, 25, Point{X: 400, Y: 0}, t0.Add(40*time.Millisecond)))
	require.Equal(t, 10, e.State().CurrentIndex)

	_, ok := e.End(touchEvent(2, 25, Point{X: 400, Y: 0}, t0.Add(60*time.Millisecond)))
	require.False(t, ok)
	require.Equal(t, PhaseSelecting, e.Phase())

	sel, ok := e.End(touchEvent(1, 10, Point{X: 0, Y: 0}, t0.Add(500*time.Millisecond)))
	require.True(t, ok)
	require.Equal(t, types.TimeString("10:30"), sel.StartTime)
}

func TestCancelFromSelecting(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(10, t0))
	require.Equal(t, PhaseSelecting, e.Phase())

	e.Cancel()
	require.Equal(t, PhaseIdle, e.Phase())
	require.Equal(t, Range{}, e.Range())
	require.Equal(t, -1, e.State().AnchorIndex)
}

func TestCancelFromCommitted(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(10, t0))
	_, ok := e.End(pointerEvent(10, t0.Add(50*time.Millisecond)))
	require.True(t, ok)
	require.Equal(t, PhaseCommitted, e.Phase())

	e.Cancel()
	require.Equal(t, PhaseIdle, e.Phase())
}

func TestApplySnapshotDiscardsStaleVersions(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.ApplySnapshot(testSnapshot(t, 2)))
	require.False(t, e.ApplySnapshot(testSnapshot(t, 2)))
	require.False(t, e.ApplySnapshot(testSnapshot(t, 1)))
	require.Equal(t, uint64(2), e.Snapshot().Version)

	require.True(t, e.ApplySnapshot(testSnapshot(t, 3)))
	require.Equal(t, uint64(3), e.Snapshot().Version)
}

func TestSnapshotSwapMidDragRevalidatesOnEnd(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(10, t0))
	require.True(t, e.Range().Valid)

	// Новый снимок посреди drag принимается, но выбор не мигает немедленно
	require.True(t, e.ApplySnapshot(testSnapshot(t, 2, 10)))
	require.True(t, e.Range().Valid)

	// Финальная валидация идет против актуального снимка
	_, ok := e.End(pointerEvent(10, t0.Add(50*time.Millisecond)))
	require.False(t, ok)
	require.Equal(t, PhaseIdle, e.Phase())
}

func TestSnapshotSwapRevalidatesOnThrottledMove(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(10, t0))
	require.True(t, e.Range().Valid)

	require.True(t, e.ApplySnapshot(testSnapshot(t, 2, 10)))
	require.True(t, e.Range().Valid)

	// Move внутри окна троттлинга не двигает диапазон, но сменившийся снимок
	// ревалидирует текущий выбор без ожидания
	e.Move(pointerEvent(11, t0.Add(5*time.Millisecond)))
	require.Equal(t, 10, e.State().CurrentIndex)
	require.False(t, e.Range().Valid)

	// Следующий снимок возвращает доступность, троттленный move подхватывает и ее
	require.True(t, e.ApplySnapshot(testSnapshot(t, 3)))
	e.Move(pointerEvent(11, t0.Add(10*time.Millisecond)))
	require.Equal(t, 10, e.State().CurrentIndex)
	require.True(t, e.Range().Valid)
}

func TestNoSnapshotNeverValid(t *testing.T) {
	e := newTestEngine(t)

	e.Begin(pointerEvent(10, t0))
	require.False(t, e.Range().Valid)

	_, ok := e.End(pointerEvent(10, t0.Add(50*time.Millisecond)))
	require.False(t, ok)
}

func TestBlockedSnapshotNeverValid(t *testing.T) {
	e := newTestEngine(t)

	snap := testSnapshot(t, 1)
	snap.Blocked = true
	require.True(t, e.ApplySnapshot(snap))

	e.Begin(pointerEvent(10, t0))
	require.False(t, e.Range().Valid)
}

func TestSetServicesRecomputesRequiredDuration(t *testing.T) {
	e := newTestEngine(t, domain.ServiceDJ)
	require.True(t, e.ApplySnapshot(testSnapshot(t, 1)))

	e.Begin(pointerEvent(10, t0))
	require.Equal(t, 300, e.Range().RequiredDurationMinutes)

	e.SetServices([]domain.ServiceType{domain.ServiceKaraoke}, nil)
	require.Equal(t, 180, e.Range().RequiredDurationMinutes)

	custom := 90
	e.SetServices([]domain.ServiceType{domain.ServiceKaraoke}, &custom)
	require.Equal(t, 90, e.Range().RequiredDurationMinutes)
}

func TestRequiredDuration(t *testing.T) {
	e := newTestEngine(t, domain.ServiceDJ, domain.ServiceKaraoke)
	got, err := e.RequiredDuration()
	require.NoError(t, err)
	require.Equal(t, 300, got)
}

func TestRangeSpanAndSlotCount(t *testing.T) {
	r := Range{StartIndex: 12, EndIndex: 10}
	lo, hi := r.Span()
	require.Equal(t, 10, lo)
	require.Equal(t, 12, hi)
	require.Equal(t, 3, r.SlotCount())

	single := Range{StartIndex: 4, EndIndex: 4}
	require.Equal(t, 1, single.SlotCount())
}

func TestPointDistanceTo(t *testing.T) {
	require.Equal(t, 5.0, Point{X: 0, Y: 0}.DistanceTo(Point{X: 3, Y: 4}))
	require.Equal(t, 0.0, Point{X: 1, Y: 1}.DistanceTo(Point{X: 1, Y: 1}))
}
