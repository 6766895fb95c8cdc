package selection_sessions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVT-SchedulingService/internal/api/handlers"
	"github.com/m04kA/EVT-SchedulingService/internal/service/selectionmgr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры сессии"
	msgSessionNotFound    = "сессия выбора не найдена"
)

// Handler обслуживает жизненный цикл интерактивных сессий выбора слотов:
// создание, поток событий указателя, чтение состояния, обновление снимка, закрытие
type Handler struct {
	manager SelectionManager
	logger  Logger
}

func NewHandler(manager SelectionManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/selection/sessions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req selectionmgr.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /selection/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.manager.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, selectionmgr.ErrInvalidDate):
			h.logger.Warn("POST /selection/sessions - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, selectionmgr.ErrInvalidInput):
			h.logger.Warn("POST /selection/sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /selection/sessions - Failed to create session: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selection/sessions - Session created: session_id=%s, date=%s", session.SessionID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

// HandleEvent POST /api/v1/selection/sessions/{sessionId}/events
func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req selectionmgr.EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /selection/sessions/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.manager.Event(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, selectionmgr.ErrSessionNotFound):
			h.logger.Warn("POST /selection/sessions/{id}/events - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selectionmgr.ErrInvalidInput):
			h.logger.Warn("POST /selection/sessions/{id}/events - Invalid event: session_id=%s, type=%s",
				sessionID, req.Type)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /selection/sessions/{id}/events - Failed to apply event: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleGet GET /api/v1/selection/sessions/{sessionId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.manager.Get(sessionID)
	if err != nil {
		if errors.Is(err, selectionmgr.ErrSessionNotFound) {
			h.logger.Warn("GET /selection/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("GET /selection/sessions/{id} - Failed to get session: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleRefresh POST /api/v1/selection/sessions/{sessionId}/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.manager.Refresh(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, selectionmgr.ErrSessionNotFound) {
			h.logger.Warn("POST /selection/sessions/{id}/refresh - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("POST /selection/sessions/{id}/refresh - Failed to refresh session: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /selection/sessions/{id}/refresh - Snapshot refreshed: session_id=%s, version=%d",
		sessionID, session.SnapshotVersion)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleClose DELETE /api/v1/selection/sessions/{sessionId}
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.manager.Close(sessionID); err != nil {
		if errors.Is(err, selectionmgr.ErrSessionNotFound) {
			h.logger.Warn("DELETE /selection/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("DELETE /selection/sessions/{id} - Failed to close session: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /selection/sessions/{id} - Session closed: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
