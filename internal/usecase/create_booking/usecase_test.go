package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/infra/storage/blockeddate"
	"github.com/m04kA/EVT-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/EVT-SchedulingService/pkg/ptr"
)

const testDate = "2026-09-11"

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time {
	return p.now
}

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	stored := *booking
	stored.ID = int64(len(f.created) + 1)
	stored.CreatedAt = time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) ListByDateRange(context.Context, time.Time, time.Time, bool) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.existing, nil
}

type fakeBlockedRepo struct {
	blocked *domain.BlockedDate
}

func (f *fakeBlockedRepo) GetByDate(context.Context, time.Time) (*domain.BlockedDate, error) {
	if f.blocked == nil {
		return nil, blockeddate.ErrBlockedDateNotFound
	}
	return f.blocked, nil
}

type fakeConfigRepo struct {
	cfg *domain.ScheduleConfig
}

func (f *fakeConfigRepo) Get(context.Context) (*domain.ScheduleConfig, error) {
	return f.cfg, nil
}

type fakeNotifier struct {
	events []notifier.BookingCreatedEvent
	err    error
}

func (f *fakeNotifier) BookingCreatedWithGracefulDegradation(_ context.Context, event notifier.BookingCreatedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type testEnv struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	blockedRepo *fakeBlockedRepo
	notifier    *fakeNotifier
	txManager   *fakeTxManager
}

func newTestEnv() *testEnv {
	cfg := domain.DefaultScheduleConfig()
	cfg.Timezone = "UTC"

	env := &testEnv{
		bookingRepo: &fakeBookingRepo{},
		blockedRepo: &fakeBlockedRepo{},
		notifier:    &fakeNotifier{},
		txManager:   &fakeTxManager{},
	}
	env.uc = NewUseCase(env.bookingRepo, env.blockedRepo, &fakeConfigRepo{cfg: cfg}, env.notifier, env.txManager, nopLogger{})
	env.uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)}
	return env
}

func validRequest() *Request {
	return &Request{
		UserID:    42,
		Date:      testDate,
		StartTime: "10:00",
		Services:  []domain.ServiceType{domain.ServiceDJ},
	}
}

func TestExecuteSuccess(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Equal(t, int64(1), resp.ID)
	require.Equal(t, int64(42), resp.UserID)
	require.Equal(t, "10:00", resp.StartTime.String())
	// Одна услуга dj: длительность 300 минут
	require.Equal(t, "15:00", resp.EndTime.String())
	require.Equal(t, 300, resp.DurationMinutes)
	require.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.Equal(t, 1, env.txManager.calls)
	require.Len(t, env.bookingRepo.created, 1)

	// Уведомление уходит после коммита транзакции
	require.Len(t, env.notifier.events, 1)
	require.Equal(t, int64(1), env.notifier.events[0].BookingID)
	require.Equal(t, testDate, env.notifier.events[0].Date)
	require.Equal(t, []string{"dj"}, env.notifier.events[0].Services)
}

func TestExecuteMultipleServicesUseMaxDuration(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Services = []domain.ServiceType{domain.ServiceKaraoke, domain.ServiceDJ}

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 300, resp.DurationMinutes)
	require.Equal(t, "15:00", resp.EndTime.String())
}

func TestExecuteCustomDuration(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.CustomDuration = ptr.Ptr(60)

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 60, resp.DurationMinutes)
	require.Equal(t, "11:00", resp.EndTime.String())
}

func TestExecuteSlotNotAvailable(t *testing.T) {
	env := newTestEnv()
	env.bookingRepo.existing = []*domain.Booking{{
		ID:        7,
		Date:      time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "18:00",
		Services:  []domain.ServiceType{domain.ServiceDJ},
		Status:    domain.StatusConfirmed,
	}}

	// Кандидат 10:30-15:30 пересекает занятое окно [12:30, 19:00)
	req := validRequest()
	req.StartTime = "10:30"

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	require.Empty(t, env.bookingRepo.created)
	require.Empty(t, env.notifier.events)

	// Ошибка несет список конфликтующих бронирований
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	require.Equal(t, int64(7), conflictErr.Conflicts[0].ID)
}

func TestExecutePaddingConflictHasEmptyList(t *testing.T) {
	env := newTestEnv()
	env.bookingRepo.existing = []*domain.Booking{{
		ID:        7,
		Date:      time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "18:00",
		Services:  []domain.ServiceType{domain.ServiceDJ},
		Status:    domain.StatusConfirmed,
	}}

	// Кандидат 08:00-13:00 заканчивается внутри паддинга [12:30, 14:00),
	// но не пересекает заявленный диапазон 14:00-18:00
	req := validRequest()
	req.StartTime = "08:00"
	req.CustomDuration = ptr.Ptr(300)

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Empty(t, conflictErr.Conflicts)
}

func TestExecuteCancelledBookingDoesNotBlock(t *testing.T) {
	env := newTestEnv()
	env.bookingRepo.existing = []*domain.Booking{{
		ID:        7,
		Date:      time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "18:00",
		Services:  []domain.ServiceType{domain.ServiceDJ},
		Status:    domain.StatusCancelledByAdmin,
	}}

	req := validRequest()
	req.StartTime = "10:30"

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecuteOutsideWindow(t *testing.T) {
	env := newTestEnv()

	// 20:00 + 300 минут выходит за закрытие окна в 23:00
	req := validRequest()
	req.StartTime = "20:00"

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteBlockedDate(t *testing.T) {
	env := newTestEnv()
	env.blockedRepo.blocked = &domain.BlockedDate{
		ID:   1,
		Date: time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrDateBlocked)
}

func TestExecutePastDate(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Date = "2026-09-09"

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteTodayStartAlreadyPassed(t *testing.T) {
	env := newTestEnv()

	// Сейчас 09:00 того же дня
	req := validRequest()
	req.Date = "2026-09-10"
	req.StartTime = "08:30"

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecuteValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := validRequest()
	req.UserID = 0
	_, err := env.uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Services = nil
	_, err = env.uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrNoServicesSpecified)

	req = validRequest()
	req.Services = []domain.ServiceType{"fire-show"}
	_, err = env.uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrUnknownService)

	req = validRequest()
	req.StartTime = "25:00"
	_, err = env.uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Date = "11.09.2026"
	_, err = env.uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteNotifierFailureDoesNotFailBooking(t *testing.T) {
	env := newTestEnv()
	env.notifier.err = errors.New("notifier down")

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.ID)
	require.Len(t, env.bookingRepo.created, 1)
}

func TestExecuteRepositoryError(t *testing.T) {
	env := newTestEnv()
	env.bookingRepo.err = errors.New("db down")

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)
	require.Empty(t, env.notifier.events)
}
