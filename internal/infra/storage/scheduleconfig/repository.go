package scheduleconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"


	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/EVT-SchedulingService/pkg/psqlbuilder"
)

const scheduleConfigTable = "schedule_config"

// Repository репозиторий конфигурации расписания
// Конфигурация хранится единственной строкой, таблица правил услуг в JSONB
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущую конфигурацию расписания
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_time",
		"close_time",
		"slot_granularity_minutes",
		"buffer_minutes",
		"base_setup_minutes",
		"extended_setup_minutes",
		"extended_setup_threshold",
		"breakdown_minutes",
		"timezone",
		"service_rules",
		"created_at",
		"updated_at",
	).
		From(scheduleConfigTable).
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var rulesJSON []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.SlotGranularityMinutes,
		&cfg.BufferMinutes,
		&cfg.BaseSetupMinutes,
		&cfg.ExtendedSetupMinutes,
		&cfg.ExtendedSetupThreshold,
		&cfg.BreakdownMinutes,
		&cfg.Timezone,
		&rulesJSON,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &cfg.ServiceRules); err != nil {
			return nil, fmt.Errorf("%w: Get - decode service rules: %v", ErrScanRow, err)
		}
	}
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert сохраняет конфигурацию расписания
// Единственная строка с id=1 перезаписывается целиком
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rulesJSON, err := json.Marshal(cfg.ServiceRules)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert: %v", ErrEncodeRules, err)
	}

	query, args, err := psqlbuilder.Insert(scheduleConfigTable).
		Columns(
			"id",
			"open_time",
			"close_time",
			"slot_granularity_minutes",
			"buffer_minutes",
			"base_setup_minutes",
			"extended_setup_minutes",
			"extended_setup_threshold",
			"breakdown_minutes",
			"timezone",
			"service_rules",
		).
		Values(
			1,
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.SlotGranularityMinutes,
			cfg.BufferMinutes,
			cfg.BaseSetupMinutes,
			cfg.ExtendedSetupMinutes,
			cfg.ExtendedSetupThreshold,
			cfg.BreakdownMinutes,
			cfg.Timezone,
			rulesJSON,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			base_setup_minutes = EXCLUDED.base_setup_minutes,
			extended_setup_minutes = EXCLUDED.extended_setup_minutes,
			extended_setup_threshold = EXCLUDED.extended_setup_threshold,
			breakdown_minutes = EXCLUDED.breakdown_minutes,
			timezone = EXCLUDED.timezone,
			service_rules = EXCLUDED.service_rules,
			updated_at = NOW()`).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
