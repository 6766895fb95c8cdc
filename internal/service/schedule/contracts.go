package schedule

import (
	"context"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	Block(ctx context.Context, date time.Time, reason *string) (*domain.BlockedDate, error)
	Unblock(ctx context.Context, date time.Time) error
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
