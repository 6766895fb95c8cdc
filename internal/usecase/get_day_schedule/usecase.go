package get_day_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/EVT-SchedulingService/internal/infra/storage/blockeddate"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/aggregate"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/availability"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/padding"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
)

// UseCase use case для получения расписания доступности на день
type UseCase struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedDateRepository
	configRepo   ConfigRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedDateRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		configRepo:   configRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения расписания на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: date=%s", req.Date)

	// 1. Валидация входных данных
	if req.Date == "" {
		uc.logger.Warn("GetDaySchedule: empty date")
		return nil, ErrInvalidDate
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию расписания (дефолты, если не настроена)
	cfg, err := uc.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()
	day, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		uc.logger.Warn("GetDaySchedule: unparsable date %q", req.Date)
		return nil, ErrInvalidDate
	}

	// 4. Проверяем блокировку даты: заблокированная дата дает ноль доступных слотов
	blocked, err := uc.blockedRepo.GetByDate(ctx, day)
	if err != nil && !errors.Is(err, blockeddate.ErrBlockedDateNotFound) {
		uc.logger.Error("GetDaySchedule: failed to get blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked date: %v", ErrInternal, err)
	}
	if blocked != nil {
		uc.logger.Info("GetDaySchedule: date %s is blocked", req.Date)
		return &Response{
			Date:          req.Date,
			Blocked:       true,
			BlockedReason: blocked.Reason,
			Slots:         []domain.TimeSlot{},
			Runs:          []aggregate.Run{},
			Bookings:      []*domain.Booking{},
		}, nil
	}

	// 5. Генерируем слоты дня
	slotOpts := slots.FromConfig(cfg, now)
	seq, err := slots.Generate(req.Date, slotOpts)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidDate) {
			return nil, ErrInvalidDate
		}
		uc.logger.Error("GetDaySchedule: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 6. Получаем активные бронирования на дату и соседние дни
	// Соседние дни нужны, чтобы бронирования с переходом через полночь
	// корректно учитывались на границах дат
	bookings, err := uc.bookingRepo.ListByDateRange(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), false)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Проставляем доступность каждому слоту с учетом паддинга
	checker := availability.NewChecker(padding.FromScheduleConfig(cfg), slotOpts)
	annotated := checker.Annotate(seq, bookings, availability.FullPadding())

	// 8. Схлопываем соседние слоты с одинаковым статусом для отображения
	runs := aggregate.Merge(annotated)

	uc.logger.Info("GetDaySchedule: date=%s, slots=%d, runs=%d, bookings=%d",
		req.Date, len(annotated), len(runs), len(bookings))

	return &Response{
		Date:     req.Date,
		Slots:    annotated,
		Runs:     runs,
		Bookings: bookings,
	}, nil
}

// loadConfig получает конфигурацию расписания с откатом на дефолтные значения
func (uc *UseCase) loadConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Info("GetDaySchedule: using default schedule config")
			return domain.DefaultScheduleConfig(), nil
		}
		uc.logger.Error("GetDaySchedule: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	return cfg, nil
}
