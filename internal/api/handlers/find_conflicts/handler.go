package find_conflicts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVT-SchedulingService/internal/api/handlers"
	findConflicts "github.com/m04kA/EVT-SchedulingService/internal/usecase/find_conflicts"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimeRange = "некорректный диапазон времени, ожидается startTime и endTime в формате HH:MM"
)

type Handler struct {
	useCase FindConflictsUseCase
	logger  Logger
}

func NewHandler(useCase FindConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/{date}/conflicts
// Query params: startTime, endTime (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date := vars["date"]

	query := r.URL.Query()
	startTime := query.Get("startTime")
	endTime := query.Get("endTime")
	if startTime == "" || endTime == "" {
		h.logger.Warn("GET /schedule/{date}/conflicts - Missing time range: date=%s", date)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &findConflicts.Request{
		Date:      date,
		StartTime: types.TimeString(startTime),
		EndTime:   types.TimeString(endTime),
	})
	if err != nil {
		switch {
		case errors.Is(err, findConflicts.ErrInvalidDate):
			h.logger.Warn("GET /schedule/{date}/conflicts - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, findConflicts.ErrInvalidTimeRange):
			h.logger.Warn("GET /schedule/{date}/conflicts - Invalid time range: date=%s, start=%s, end=%s",
				date, startTime, endTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("GET /schedule/{date}/conflicts - Failed to find conflicts: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/{date}/conflicts - Found %d conflicts: date=%s", len(result.Conflicts), date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
