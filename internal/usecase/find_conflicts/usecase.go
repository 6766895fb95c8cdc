package find_conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/aggregate"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при пустой или некорректной дате
	ErrInvalidDate = errors.New("invalid conflicts date")

	// ErrInvalidTimeRange возвращается при некорректной паре start/end
	ErrInvalidTimeRange = errors.New("invalid conflicts time range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// Request модель запроса конфликтующих бронирований
type Request struct {
	Date      string           // Дата в формате YYYY-MM-DD
	StartTime types.TimeString // Начало кандидатного диапазона
	EndTime   types.TimeString // Конец кандидатного диапазона
}

// Response модель ответа со списком конфликтов
type Response struct {
	Date      string
	Conflicts []*domain.Booking
}

// UseCase use case для человекочитаемого отчета о конфликтах.
// В отличие от проверки доступности, паддинг здесь не учитывается:
// возвращаются бронирования, чей заявленный диапазон пересекает кандидатный.
type UseCase struct {
	bookingRepo BookingRepository
	configRepo  ConfigRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, configRepo ConfigRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		configRepo:  configRepo,
		logger:      logger,
	}
}

// Execute выполняет use case поиска конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindConflicts: date=%s, start=%s, end=%s", req.Date, req.StartTime, req.EndTime)

	if req.Date == "" {
		return nil, ErrInvalidDate
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("FindConflicts: failed to get schedule config: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		cfg = domain.DefaultScheduleConfig()
	}

	loc := cfg.Location()
	day, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		return nil, ErrInvalidDate
	}

	candStart := req.StartTime.At(day, loc)
	candEnd := req.EndTime.At(day, loc)
	if !candEnd.After(candStart) {
		// Диапазон с переходом через полночь: конец на следующей дате
		if cfg.CrossesMidnight() {
			candEnd = candEnd.AddDate(0, 0, 1)
		} else {
			return nil, ErrInvalidTimeRange
		}
	}

	bookings, err := uc.bookingRepo.ListByDateRange(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), false)
	if err != nil {
		uc.logger.Error("FindConflicts: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := aggregate.FindConflicts(candStart, candEnd, bookings, loc)

	uc.logger.Info("FindConflicts: date=%s, found %d conflicts", req.Date, len(conflicts))

	return &Response{Date: req.Date, Conflicts: conflicts}, nil
}
