package unblock_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVT-SchedulingService/internal/api/handlers"
	"github.com/m04kA/EVT-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotBlocked  = "дата не заблокирована"
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

// Handle DELETE /api/v1/admin/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date := vars["date"]

	err := h.service.UnblockDate(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidDate):
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, schedule.ErrNotBlocked):
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Date not blocked: date=%s", date)
			handlers.RespondNotFound(w, msgNotBlocked)

		default:
			h.logger.Error("DELETE /admin/blocked-dates/{date} - Failed to unblock date: date=%s, error=%v",
				date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates/{date} - Date unblocked successfully: date=%s", date)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
