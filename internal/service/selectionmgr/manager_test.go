package selectionmgr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/aggregate"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
	"github.com/m04kA/EVT-SchedulingService/internal/usecase/get_day_schedule"
	"github.com/m04kA/EVT-SchedulingService/pkg/ptr"
)

const testDate = "2026-09-11"

type nopLogger struct{}

func (nopLogger) Info(format string, args ...any)  {}
func (nopLogger) Warn(format string, args ...any)  {}
func (nopLogger) Error(format string, args ...any) {}

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

func (c *stubClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fakeScheduleUsecase struct {
	blocked bool
	err     error
	calls   int
}

func (f *fakeScheduleUsecase) Execute(_ context.Context, req *get_day_schedule.Request) (*get_day_schedule.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.blocked {
		return &get_day_schedule.Response{
			Date:     req.Date,
			Blocked:  true,
			Slots:    []domain.TimeSlot{},
			Runs:     []aggregate.Run{},
			Bookings: []*domain.Booking{},
		}, nil
	}
	seq, err := slots.Generate(req.Date, slots.Options{Location: time.UTC})
	if err != nil {
		return nil, get_day_schedule.ErrInvalidDate
	}
	return &get_day_schedule.Response{
		Date:     req.Date,
		Slots:    seq,
		Runs:     aggregate.Merge(seq),
		Bookings: []*domain.Booking{},
	}, nil
}

type fakeConfigRepository struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeConfigRepository) Get(context.Context) (*domain.ScheduleConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

func newTestManager() (*Manager, *fakeScheduleUsecase, *stubClock) {
	cfg := domain.DefaultScheduleConfig()
	cfg.Timezone = "UTC"

	scheduleUC := &fakeScheduleUsecase{}
	clock := &stubClock{now: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)}
	m := NewManager(scheduleUC, &fakeConfigRepository{cfg: cfg}, clock, nopLogger{})
	return m, scheduleUC, clock
}

func createRequest() *CreateSessionRequest {
	return &CreateSessionRequest{
		Date:     testDate,
		Services: []string{"dj"},
	}
}

func TestCreateSession(t *testing.T) {
	m, scheduleUC, _ := newTestManager()

	resp, err := m.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, testDate, resp.Date)
	require.Equal(t, "idle", resp.Phase)
	require.Equal(t, uint64(1), resp.SnapshotVersion)
	require.Equal(t, 60, resp.SlotCount)
	require.False(t, resp.Blocked)
	require.Nil(t, resp.Range)
	require.Nil(t, resp.Committed)
	require.Equal(t, 1, scheduleUC.calls)
}

func TestCreateSessionValidation(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	_, err := m.Create(ctx, &CreateSessionRequest{Date: "", Services: []string{"dj"}})
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = m.Create(ctx, &CreateSessionRequest{Date: "11.09.2026", Services: []string{"dj"}})
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = m.Create(ctx, &CreateSessionRequest{Date: testDate})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Create(ctx, &CreateSessionRequest{Date: testDate, Services: []string{"fire-show"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Create(ctx, &CreateSessionRequest{Date: testDate, Services: []string{"dj"}, CustomDuration: ptr.Ptr(5)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateSessionAcceptsConfiguredService(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.Timezone = "UTC"
	cfg.ServiceRules["fire-show"] = domain.ServiceRule{
		MinDurationMinutes:     60,
		MaxDurationMinutes:     120,
		DefaultDurationMinutes: 90,
		SetupWeight:            2,
	}

	clock := &stubClock{now: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)}
	m := NewManager(&fakeScheduleUsecase{}, &fakeConfigRepository{cfg: cfg}, clock, nopLogger{})

	// Услуга из таблицы правил принимается без изменения кода
	resp, err := m.Create(context.Background(), &CreateSessionRequest{Date: testDate, Services: []string{"fire-show"}})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, 60, resp.SlotCount)
}

func TestCreateSessionScheduleLoadFails(t *testing.T) {
	m, scheduleUC, _ := newTestManager()
	scheduleUC.err = errors.New("db down")

	_, err := m.Create(context.Background(), createRequest())
	require.ErrorIs(t, err, ErrInternal)
}

func TestEventDragCommitFlow(t *testing.T) {
	m, _, clock := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)
	id := created.SessionID

	resp, err := m.Event(ctx, id, &EventRequest{Type: EventBegin, SlotIndex: 10})
	require.NoError(t, err)
	require.Equal(t, "selecting", resp.Phase)
	require.NotNil(t, resp.Range)
	require.Equal(t, 10, resp.Range.StartIndex)
	require.Equal(t, 10, resp.Range.EndIndex)
	require.Equal(t, 300, resp.Range.RequiredDurationMinutes)
	require.True(t, resp.Range.Valid)

	clock.advance(50 * time.Millisecond)
	resp, err = m.Event(ctx, id, &EventRequest{Type: EventMove, SlotIndex: 12})
	require.NoError(t, err)
	require.Equal(t, 12, resp.Range.EndIndex)
	require.True(t, resp.Range.Valid)

	clock.advance(50 * time.Millisecond)
	resp, err = m.Event(ctx, id, &EventRequest{Type: EventEnd, SlotIndex: 12})
	require.NoError(t, err)
	require.Equal(t, "committed", resp.Phase)
	require.Nil(t, resp.Range)
	require.NotNil(t, resp.Committed)
	require.Equal(t, testDate, resp.Committed.Date)
	require.Equal(t, "10:30", resp.Committed.StartTime)
	require.Equal(t, "11:15", resp.Committed.EndTime)
	require.Equal(t, 45, resp.Committed.DurationMinutes)
	require.Equal(t, []string{"dj"}, resp.Committed.Services)
}

func TestEventCancelClearsCommit(t *testing.T) {
	m, _, clock := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)
	id := created.SessionID

	_, err = m.Event(ctx, id, &EventRequest{Type: EventBegin, SlotIndex: 10})
	require.NoError(t, err)
	clock.advance(50 * time.Millisecond)
	resp, err := m.Event(ctx, id, &EventRequest{Type: EventEnd, SlotIndex: 10})
	require.NoError(t, err)
	require.Equal(t, "committed", resp.Phase)

	resp, err = m.Event(ctx, id, &EventRequest{Type: EventCancel})
	require.NoError(t, err)
	require.Equal(t, "idle", resp.Phase)
	require.Nil(t, resp.Committed)
}

func TestEventTouchTap(t *testing.T) {
	m, _, clock := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)
	id := created.SessionID

	_, err = m.Event(ctx, id, &EventRequest{Type: EventBegin, Kind: InputTouch, TouchID: 1, SlotIndex: 10})
	require.NoError(t, err)

	clock.advance(100 * time.Millisecond)
	resp, err := m.Event(ctx, id, &EventRequest{Type: EventEnd, Kind: InputTouch, TouchID: 1, SlotIndex: 10})
	require.NoError(t, err)
	require.Equal(t, "committed", resp.Phase)
	require.Equal(t, 15, resp.Committed.DurationMinutes)
}

func TestEventValidation(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)

	_, err = m.Event(ctx, created.SessionID, &EventRequest{Type: "hover", SlotIndex: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Event(ctx, created.SessionID, &EventRequest{Type: EventBegin, Kind: "stylus", SlotIndex: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Event(ctx, "no-such-session", &EventRequest{Type: EventBegin, SlotIndex: 1})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSession(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)

	resp, err := m.Get(created.SessionID)
	require.NoError(t, err)
	require.Equal(t, created.SessionID, resp.SessionID)
	require.Equal(t, "idle", resp.Phase)

	_, err = m.Get("no-such-session")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRefreshBumpsSnapshotVersion(t *testing.T) {
	m, scheduleUC, _ := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)
	require.Equal(t, uint64(1), created.SnapshotVersion)

	resp, err := m.Refresh(ctx, created.SessionID)
	require.NoError(t, err)
	require.Equal(t, uint64(2), resp.SnapshotVersion)
	require.Equal(t, 2, scheduleUC.calls)
}

func TestRefreshPicksUpBlockedDate(t *testing.T) {
	m, scheduleUC, _ := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)
	require.False(t, created.Blocked)

	scheduleUC.blocked = true
	resp, err := m.Refresh(ctx, created.SessionID)
	require.NoError(t, err)
	require.True(t, resp.Blocked)
	require.Equal(t, 0, resp.SlotCount)
}

func TestCloseSession(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	created, err := m.Create(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, m.Close(created.SessionID))
	require.ErrorIs(t, m.Close(created.SessionID), ErrSessionNotFound)

	_, err = m.Get(created.SessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExpiredSessionsSweptOnCreate(t *testing.T) {
	m, _, clock := newTestManager()
	ctx := context.Background()

	first, err := m.Create(ctx, createRequest())
	require.NoError(t, err)

	// Неактивная сессия вычищается лениво при создании следующей
	clock.advance(DefaultSessionTTL + time.Minute)
	_, err = m.Create(ctx, createRequest())
	require.NoError(t, err)

	_, err = m.Get(first.SessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTouchedByEventSurvivesSweep(t *testing.T) {
	m, _, clock := newTestManager()
	ctx := context.Background()

	first, err := m.Create(ctx, createRequest())
	require.NoError(t, err)

	clock.advance(20 * time.Minute)
	_, err = m.Event(ctx, first.SessionID, &EventRequest{Type: EventBegin, SlotIndex: 5})
	require.NoError(t, err)

	// С момента последнего события прошло меньше TTL
	clock.advance(20 * time.Minute)
	_, err = m.Create(ctx, createRequest())
	require.NoError(t, err)

	_, err = m.Get(first.SessionID)
	require.NoError(t, err)
}
