package selectionmgr

import (
	"context"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/usecase/get_day_schedule"
)

// ScheduleUsecase интерфейс загрузки дневного расписания для снимков
type ScheduleUsecase interface {
	Execute(ctx context.Context, req *get_day_schedule.Request) (*get_day_schedule.Response, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// TimeProvider интерфейс получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
