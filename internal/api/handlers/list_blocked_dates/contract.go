package list_blocked_dates

import (
	"context"

	"github.com/m04kA/EVT-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlockedDates(ctx context.Context, rawFrom, rawTo string) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
