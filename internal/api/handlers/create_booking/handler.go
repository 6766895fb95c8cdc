package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVT-SchedulingService/internal/api/handlers"
	"github.com/m04kA/EVT-SchedulingService/internal/api/middleware"
	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/EVT-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidDate        = "некорректная дата бронирования"
	msgInvalidTimeRange   = "некорректный диапазон времени бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
	msgNoServices         = "не указано ни одной услуги"
	msgUnknownService     = "неизвестная услуга в наборе"
	msgDateBlocked        = "дата закрыта для бронирований"
	msgSlotNotAvailable   = "выбранный временной диапазон недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			// 409 несет список конфликтующих бронирований, когда usecase его собрал
			var conflictErr *createBooking.ConflictError
			var conflicts []*domain.Booking
			if errors.As(err, &conflictErr) {
				conflicts = conflictErr.Conflicts
			}
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, date=%s, start=%s, conflicts=%d",
				userID, req.Date, req.StartTime, len(conflicts))
			handlers.RespondJSON(w, http.StatusConflict, NewConflictResponse(msgSlotNotAvailable, conflicts))

		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDateBlocked)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, date=%s, start=%s",
				userID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrNoServicesSpecified):
			h.logger.Warn("POST /bookings - No services specified: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgNoServices)

		case errors.Is(err, createBooking.ErrUnknownService):
			h.logger.Warn("POST /bookings - Unknown service: user_id=%d, services=%v", userID, req.Services)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, date=%s",
		result.ID, userID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
