package list_blocked_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVT-SchedulingService/internal/api/handlers"
	"github.com/m04kA/EVT-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidParams = "некорректные параметры запроса, ожидается from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/blocked-dates
// Query params: from, to (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	result, err := h.service.ListBlockedDates(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidDate), errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /blocked-dates - Invalid parameters: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /blocked-dates - Failed to list blocked dates: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /blocked-dates - Blocked dates retrieved: from=%s, to=%s, count=%d",
		from, to, len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
