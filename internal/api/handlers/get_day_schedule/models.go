package get_day_schedule

import (
	"time"

	getDaySchedule "github.com/m04kA/EVT-SchedulingService/internal/usecase/get_day_schedule"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Index     int       `json:"index"`
	StartTime string    `json:"startTime"` // HH:MM в таймзоне расписания
	EndTime   string    `json:"endTime"`
	Start     time.Time `json:"start"` // Абсолютное время начала слота
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// RunResponse HTTP модель отрезка одинаковой доступности
type RunResponse struct {
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Available       bool      `json:"available"`
	DurationMinutes int       `json:"durationMinutes"`
}

// DayScheduleResponse HTTP модель расписания на день
type DayScheduleResponse struct {
	Date          string         `json:"date"`
	Blocked       bool           `json:"blocked"`
	BlockedReason *string        `json:"blockedReason,omitempty"`
	Slots         []SlotResponse `json:"slots"`
	Runs          []RunResponse  `json:"runs"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Index:     s.Index,
			StartTime: string(types.NewTimeString(s.Start)),
			EndTime:   string(types.NewTimeString(s.End)),
			Start:     s.Start,
			End:       s.End,
			Available: s.Available,
		}
	}

	runs := make([]RunResponse, len(resp.Runs))
	for i, r := range resp.Runs {
		runs[i] = RunResponse{
			StartTime:       string(types.NewTimeString(r.Start)),
			EndTime:         string(types.NewTimeString(r.End)),
			Start:           r.Start,
			End:             r.End,
			Available:       r.Available,
			DurationMinutes: int(r.Duration() / time.Minute),
		}
	}

	return &DayScheduleResponse{
		Date:          resp.Date,
		Blocked:       resp.Blocked,
		BlockedReason: resp.BlockedReason,
		Slots:         slots,
		Runs:          runs,
	}
}
