package selectionmgr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/padding"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/slots"
	"github.com/m04kA/EVT-SchedulingService/internal/selection"
	"github.com/m04kA/EVT-SchedulingService/internal/usecase/get_day_schedule"
)

// DefaultSessionTTL время жизни неактивной сессии выбора
const DefaultSessionTTL = 30 * time.Minute

// session одна интерактивная сессия выбора слотов.
// Движок не потокобезопасен, поэтому все обращения идут под мьютексом сессии.
type session struct {
	mu sync.Mutex

	id        string
	date      string
	engine    *selection.Engine
	committed *selection.Selection
	blocked   bool
	slotCount int
	version   uint64

	lastUsedAt time.Time
}

// Manager реестр интерактивных сессий выбора слотов.
//
// Каждая сессия владеет собственным движком выбора; менеджер загружает для него
// версионированные снимки доступности через usecase дневного расписания.
// Неактивные сессии вычищаются лениво при создании новых.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	versions atomic.Uint64 // Монотонный источник версий снимков
	ttl      time.Duration

	scheduleUC   ScheduleUsecase
	configRepo   ConfigRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewManager создает новый менеджер сессий выбора
func NewManager(scheduleUC ScheduleUsecase, configRepo ConfigRepository, timeProvider TimeProvider, logger Logger) *Manager {
	return &Manager{
		sessions:     make(map[string]*session),
		ttl:          DefaultSessionTTL,
		scheduleUC:   scheduleUC,
		configRepo:   configRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create создает сессию выбора для даты и набора услуг и загружает
// первый снимок доступности
func (m *Manager) Create(ctx context.Context, req *CreateSessionRequest) (*SessionResponse, error) {
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD", ErrInvalidDate)
	}
	if len(req.Services) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if req.CustomDuration != nil &&
		(*req.CustomDuration < domain.MinDurationMinutes || *req.CustomDuration > domain.MaxDurationMinutes) {
		return nil, fmt.Errorf("%w: custom_duration_minutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	// 1. Конфигурация расписания: окно, паддинги, правила услуг
	cfg, err := m.configRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			m.logger.Error("Create: config repository error: %v", err)
			return nil, fmt.Errorf("%w: Create - config repository error: %v", ErrInternal, err)
		}
		cfg = domain.DefaultScheduleConfig()
	}

	// Набор услуг валидируется против таблицы правил из конфигурации,
	// а не против зашитого перечисления
	services := make([]domain.ServiceType, 0, len(req.Services))
	for _, raw := range req.Services {
		st := domain.ServiceType(raw)
		if !cfg.ServiceRules.Known(st) {
			return nil, fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, raw)
		}
		services = append(services, st)
	}

	now := m.timeProvider.Now()

	// 2. Движок выбора с параметрами дня
	engine := selection.New(selection.Config{
		Services:       services,
		CustomDuration: req.CustomDuration,
		Rules:          cfg.ServiceRules.Clone(),
		Padding:        padding.FromScheduleConfig(cfg),
		Window:         slots.FromConfig(cfg, now),
	})

	sess := &session{
		id:         uuid.NewString(),
		date:       req.Date,
		engine:     engine,
		lastUsedAt: now,
	}

	// 3. Первый снимок доступности
	if err := m.loadSnapshot(ctx, sess); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sweepLocked(now)
	m.sessions[sess.id] = sess
	m.mu.Unlock()

	m.logger.Info("Create: session=%s created for date=%s, services=%v", sess.id, req.Date, req.Services)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.response(), nil
}

// Event применяет входное событие указателя или касания к сессии
func (m *Manager) Event(ctx context.Context, sessionID string, req *EventRequest) (*SessionResponse, error) {
	sess, err := m.find(sessionID)
	if err != nil {
		return nil, err
	}

	var kind selection.InputKind
	switch req.Kind {
	case InputPointer, "":
		kind = selection.InputPointer
	case InputTouch:
		kind = selection.InputTouch
	default:
		return nil, fmt.Errorf("%w: unknown input kind %q", ErrInvalidInput, req.Kind)
	}

	now := m.timeProvider.Now()
	ev := selection.Event{
		Kind:      kind,
		TouchID:   req.TouchID,
		SlotIndex: req.SlotIndex,
		Point:     selection.Point{X: req.X, Y: req.Y},
		At:        now,
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsedAt = now

	switch req.Type {
	case EventBegin:
		sess.engine.Begin(ev)
	case EventMove:
		sess.engine.Move(ev)
	case EventEnd:
		if sel, ok := sess.engine.End(ev); ok {
			sess.committed = &sel
		}
	case EventCancel:
		sess.engine.Cancel()
		sess.committed = nil
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, req.Type)
	}

	return sess.response(), nil
}

// Get возвращает текущее состояние сессии
func (m *Manager) Get(sessionID string) (*SessionResponse, error) {
	sess, err := m.find(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.response(), nil
}

// Refresh перезагружает снимок доступности сессии.
// Выбор посреди drag не сбрасывается: движок ревалидирует его на следующем событии
func (m *Manager) Refresh(ctx context.Context, sessionID string) (*SessionResponse, error) {
	sess, err := m.find(sessionID)
	if err != nil {
		return nil, err
	}

	if err := m.loadSnapshot(ctx, sess); err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsedAt = m.timeProvider.Now()
	return sess.response(), nil
}

// Close удаляет сессию
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	m.logger.Info("Close: session=%s removed", sessionID)
	return nil
}

func (m *Manager) find(sessionID string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// loadSnapshot загружает дневное расписание и применяет его к движку
// как версионированный снимок
func (m *Manager) loadSnapshot(ctx context.Context, sess *session) error {
	day, err := m.scheduleUC.Execute(ctx, &get_day_schedule.Request{Date: sess.date})
	if err != nil {
		if errors.Is(err, get_day_schedule.ErrInvalidDate) {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		m.logger.Error("loadSnapshot: schedule load failed for session=%s date=%s: %v", sess.id, sess.date, err)
		return fmt.Errorf("%w: loadSnapshot - schedule load failed: %v", ErrInternal, err)
	}

	version := m.versions.Add(1)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.engine.ApplySnapshot(selection.Snapshot{
		Version:  version,
		Date:     day.Date,
		Slots:    day.Slots,
		Bookings: day.Bookings,
		Blocked:  day.Blocked,
	})
	sess.blocked = day.Blocked
	sess.slotCount = len(day.Slots)
	sess.version = version
	return nil
}

// sweepLocked вычищает просроченные сессии; вызывается под m.mu
func (m *Manager) sweepLocked(now time.Time) {
	for id, sess := range m.sessions {
		sess.mu.Lock()
		expired := now.Sub(sess.lastUsedAt) > m.ttl
		sess.mu.Unlock()
		if expired {
			delete(m.sessions, id)
			m.logger.Info("sweep: session=%s expired", id)
		}
	}
}

// response собирает модель ответа; вызывается под sess.mu
func (s *session) response() *SessionResponse {
	resp := &SessionResponse{
		SessionID:       s.id,
		Date:            s.date,
		Phase:           string(s.engine.Phase()),
		SnapshotVersion: s.version,
		SlotCount:       s.slotCount,
		Blocked:         s.blocked,
	}

	if s.engine.Phase() == selection.PhaseSelecting {
		rng := s.engine.Range()
		resp.Range = &RangeResponse{
			StartIndex:              rng.StartIndex,
			EndIndex:                rng.EndIndex,
			RequiredDurationMinutes: rng.RequiredDurationMinutes,
			Valid:                   rng.Valid,
		}
	}

	if s.engine.Phase() == selection.PhaseCommitted && s.committed != nil {
		services := make([]string, len(s.committed.Services))
		for i, st := range s.committed.Services {
			services[i] = string(st)
		}
		resp.Committed = &SelectionResponse{
			Date:            s.committed.Date,
			StartTime:       string(s.committed.StartTime),
			EndTime:         string(s.committed.EndTime),
			Services:        services,
			DurationMinutes: s.committed.DurationMinutes,
		}
	}

	return resp
}
