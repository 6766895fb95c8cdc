package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/infra/storage/blockeddate"
	configRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/EVT-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/aggregate"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/availability"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/padding"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/services"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedDateRepository
	configRepo   ConfigRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedDateRepository,
	configRepo ConfigRepository,
	notify Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		configRepo:   configRepo,
		notifier:     notify,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка идут в сериализуемой транзакции,
// чтобы два конкурентных запроса не заняли один и тот же диапазон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, date=%s, time=%s, services=%v",
		req.UserID, req.Date, req.StartTime, req.Services)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем конфигурацию расписания (дефолты, если не настроена)
		cfg, err := uc.loadConfig(txCtx)
		if err != nil {
			return err
		}

		loc := cfg.Location()
		day, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
		if err != nil {
			uc.logger.Warn("CreateBooking: unparsable date %q", req.Date)
			return ErrInvalidDate
		}

		// 3.2. Дата не должна быть в прошлом
		if isDateInPast(day, now.In(loc)) {
			uc.logger.Warn("CreateBooking: date %s is in the past", req.Date)
			return ErrInvalidDate
		}

		// 3.3. Заблокированная дата недоступна целиком
		blocked, err := uc.blockedRepo.GetByDate(txCtx, day)
		if err != nil && !errors.Is(err, blockeddate.ErrBlockedDateNotFound) {
			uc.logger.Error("CreateBooking: failed to get blocked date: %v", err)
			return fmt.Errorf("%w: failed to get blocked date: %v", ErrInternal, err)
		}
		if blocked != nil {
			uc.logger.Warn("CreateBooking: date %s is blocked", req.Date)
			return ErrDateBlocked
		}

		// 3.4. Определяем длительность бронирования для набора услуг
		duration, err := services.ResolveDuration(
			req.Services,
			services.Options{CustomDuration: req.CustomDuration},
			cfg.ServiceRules,
		)
		if err != nil {
			if errors.Is(err, services.ErrNoServicesSpecified) {
				return ErrNoServicesSpecified
			}
			if errors.Is(err, services.ErrUnknownService) {
				uc.logger.Warn("CreateBooking: %v", err)
				return fmt.Errorf("%w: %v", ErrUnknownService, err)
			}
			return fmt.Errorf("%w: failed to resolve duration: %v", ErrInternal, err)
		}

		candStart := req.StartTime.At(day, loc)
		candEnd := candStart.Add(time.Duration(duration) * time.Minute)

		// 3.5. Сегодняшнее бронирование не может начинаться в прошлом
		if isSameDay(day, now.In(loc)) && candStart.Before(now) {
			uc.logger.Warn("CreateBooking: start time %s already passed", req.StartTime)
			return ErrInvalidTimeRange
		}

		// 3.6. Получаем активные бронирования на дату и соседние дни
		bookings, err := uc.bookingRepo.ListByDateRange(txCtx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), false)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.7. Проверяем доступность диапазона с полным паддингом
		checker := availability.NewChecker(padding.FromScheduleConfig(cfg), slots.FromConfig(cfg, now))
		available, err := checker.IsAvailable(req.Date, candStart, candEnd, bookings, availability.FullPadding())
		if err != nil {
			if errors.Is(err, availability.ErrInvalidTimeRange) {
				return ErrInvalidTimeRange
			}
			if errors.Is(err, slots.ErrInvalidDate) {
				return ErrInvalidDate
			}
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !available {
			conflicts := aggregate.FindConflicts(candStart, candEnd, bookings, loc)
			uc.logger.Warn("CreateBooking: range %s-%s on %s is not available, %d conflicts",
				req.StartTime, types.NewTimeString(candEnd), req.Date, len(conflicts))
			return &ConflictError{Conflicts: conflicts}
		}

		// 3.8. Создаем бронирование
		booking := &domain.Booking{
			UserID:          req.UserID,
			Date:            day,
			StartTime:       req.StartTime,
			EndTime:         types.NewTimeString(candEnd),
			DurationMinutes: duration,
			Services:        req.Services,
			Status:          domain.StatusConfirmed,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 4. Уведомляем внешнего получателя после коммита транзакции
	// Недоступность получателя не откатывает бронирование
	uc.notifyCreated(ctx, result)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Services:        result.Services,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) notifyCreated(ctx context.Context, booking *domain.Booking) {
	if uc.notifier == nil {
		return
	}

	servicesList := make([]string, len(booking.Services))
	for i, s := range booking.Services {
		servicesList[i] = string(s)
	}

	err := uc.notifier.BookingCreatedWithGracefulDegradation(ctx, notifier.BookingCreatedEvent{
		BookingID:       booking.ID,
		UserID:          booking.UserID,
		Date:            booking.Date.Format(domain.DateFormat),
		StartTime:       booking.StartTime.String(),
		EndTime:         booking.EndTime.String(),
		DurationMinutes: booking.DurationMinutes,
		Services:        servicesList,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: notification skipped for booking id=%d: %v", booking.ID, err)
	}
}

// loadConfig получает конфигурацию расписания с откатом на дефолтные значения
func (uc *UseCase) loadConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Info("CreateBooking: using default schedule config")
			return domain.DefaultScheduleConfig(), nil
		}
		uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	return cfg, nil
}
