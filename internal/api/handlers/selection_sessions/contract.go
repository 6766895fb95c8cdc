package selection_sessions

import (
	"context"

	"github.com/m04kA/EVT-SchedulingService/internal/service/selectionmgr"
)

type SelectionManager interface {
	Create(ctx context.Context, req *selectionmgr.CreateSessionRequest) (*selectionmgr.SessionResponse, error)
	Event(ctx context.Context, sessionID string, req *selectionmgr.EventRequest) (*selectionmgr.SessionResponse, error)
	Get(sessionID string) (*selectionmgr.SessionResponse, error)
	Refresh(ctx context.Context, sessionID string) (*selectionmgr.SessionResponse, error)
	Close(sessionID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
