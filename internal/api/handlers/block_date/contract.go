package block_date

import (
	"context"

	"github.com/m04kA/EVT-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	BlockDate(ctx context.Context, req *models.BlockDateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
