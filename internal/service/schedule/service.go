package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	blockedRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/blockeddate"
	configRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/EVT-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// Service сервис администрирования расписания:
// конфигурация календаря и блокировка дат
type Service struct {
	configRepo  ConfigRepository
	blockedRepo BlockedDateRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(configRepo ConfigRepository, blockedRepo BlockedDateRepository, logger Logger) *Service {
	return &Service{
		configRepo:  configRepo,
		blockedRepo: blockedRepo,
		logger:      logger,
	}
}

// GetConfig возвращает текущую конфигурацию расписания
// При отсутствии сохраненной конфигурации возвращает значения по умолчанию
func (s *Service) GetConfig(ctx context.Context) (*models.ScheduleConfigResponse, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetConfig: no stored config, returning defaults")
			return models.FromDomainScheduleConfig(domain.DefaultScheduleConfig()), nil
		}
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleConfig(cfg), nil
}

// UpdateConfig частично обновляет конфигурацию расписания
// Nil-поля запроса сохраняют текущие значения
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateScheduleConfigRequest) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating schedule configuration")

	// 1. Загружаем текущую конфигурацию (или значения по умолчанию)
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("UpdateConfig: repository error: %v", err)
			return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
		}
		cfg = domain.DefaultScheduleConfig()
	}

	// 2. Применяем переданные поля
	applyConfigPatch(cfg, req)

	// 3. Валидируем итоговую конфигурацию
	if err := validateConfig(cfg); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем
	updated, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateConfig: upsert error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - upsert error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: configuration updated, window %s-%s", updated.OpenTime, updated.CloseTime)
	return models.FromDomainScheduleConfig(updated), nil
}

// BlockDate блокирует дату для бронирований
// Повторная блокировка той же даты обновляет причину
func (s *Service) BlockDate(ctx context.Context, req *models.BlockDateRequest) (*models.BlockedDateResponse, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("BlockDate: invalid date=%s", req.Date)
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD", ErrInvalidDate)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockedReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxBlockedReasonLength)
	}

	blocked, err := s.blockedRepo.Block(ctx, date, req.Reason)
	if err != nil {
		s.logger.Error("BlockDate: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockDate: date=%s blocked", req.Date)
	return models.FromDomainBlockedDate(blocked), nil
}

// UnblockDate снимает блокировку даты
func (s *Service) UnblockDate(ctx context.Context, rawDate string) error {
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		s.logger.Warn("UnblockDate: invalid date=%s", rawDate)
		return fmt.Errorf("%w: expected YYYY-MM-DD", ErrInvalidDate)
	}

	if err := s.blockedRepo.Unblock(ctx, date); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("UnblockDate: date=%s is not blocked", rawDate)
			return ErrNotBlocked
		}
		s.logger.Error("UnblockDate: repository error for date=%s: %v", rawDate, err)
		return fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockDate: date=%s unblocked", rawDate)
	return nil
}

// ListBlockedDates возвращает заблокированные даты в диапазоне [from, to]
func (s *Service) ListBlockedDates(ctx context.Context, rawFrom, rawTo string) (*models.BlockedDateListResponse, error) {
	from, err := time.Parse(domain.DateFormat, rawFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: from - expected YYYY-MM-DD", ErrInvalidDate)
	}
	to, err := time.Parse(domain.DateFormat, rawTo)
	if err != nil {
		return nil, fmt.Errorf("%w: to - expected YYYY-MM-DD", ErrInvalidDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	items, err := s.blockedRepo.ListRange(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDateList(items), nil
}

// applyConfigPatch переносит непустые поля запроса в конфигурацию
func applyConfigPatch(cfg *domain.ScheduleConfig, req *models.UpdateScheduleConfigRequest) {
	if req.OpenTime != nil {
		cfg.OpenTime = types.TimeString(*req.OpenTime)
	}
	if req.CloseTime != nil {
		cfg.CloseTime = types.TimeString(*req.CloseTime)
	}
	if req.SlotGranularityMinutes != nil {
		cfg.SlotGranularityMinutes = *req.SlotGranularityMinutes
	}
	if req.BufferMinutes != nil {
		cfg.BufferMinutes = *req.BufferMinutes
	}
	if req.BaseSetupMinutes != nil {
		cfg.BaseSetupMinutes = *req.BaseSetupMinutes
	}
	if req.ExtendedSetupMinutes != nil {
		cfg.ExtendedSetupMinutes = *req.ExtendedSetupMinutes
	}
	if req.ExtendedSetupThreshold != nil {
		cfg.ExtendedSetupThreshold = *req.ExtendedSetupThreshold
	}
	if req.BreakdownMinutes != nil {
		cfg.BreakdownMinutes = *req.BreakdownMinutes
	}
	if req.Timezone != nil {
		cfg.Timezone = *req.Timezone
	}
	if req.ServiceRules != nil {
		rules := make(domain.ServiceRules, len(req.ServiceRules))
		for name, rule := range req.ServiceRules {
			rules[domain.ServiceType(name)] = domain.ServiceRule{
				MinDurationMinutes:     rule.MinDurationMinutes,
				MaxDurationMinutes:     rule.MaxDurationMinutes,
				DefaultDurationMinutes: rule.DefaultDurationMinutes,
				SetupWeight:            rule.SetupWeight,
			}
		}
		cfg.ServiceRules = rules
	}
}

// validateConfig проверяет бизнес-ограничения итоговой конфигурации
func validateConfig(cfg *domain.ScheduleConfig) error {
	if err := cfg.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open_time: %v", ErrInvalidInput, err)
	}
	if err := cfg.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close_time: %v", ErrInvalidInput, err)
	}
	if cfg.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		cfg.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slot_granularity_minutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}
	for name, v := range map[string]int{
		"buffer_minutes":         cfg.BufferMinutes,
		"base_setup_minutes":     cfg.BaseSetupMinutes,
		"extended_setup_minutes": cfg.ExtendedSetupMinutes,
		"breakdown_minutes":      cfg.BreakdownMinutes,
	} {
		if v < domain.MinPaddingMinutes || v > domain.MaxPaddingMinutes {
			return fmt.Errorf("%w: %s must be in [%d, %d]",
				ErrInvalidInput, name, domain.MinPaddingMinutes, domain.MaxPaddingMinutes)
		}
	}
	if cfg.ExtendedSetupThreshold < 1 {
		return fmt.Errorf("%w: extended_setup_threshold must be positive", ErrInvalidInput)
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, cfg.Timezone)
		}
	}
	for st, rule := range cfg.ServiceRules {
		// Таблица правил и есть источник истины по набору услуг, поэтому
		// новые ключи проверяются только на форму идентификатора
		if err := domain.ValidateServiceIdentifier(st); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if rule.MinDurationMinutes < domain.MinDurationMinutes ||
			rule.MaxDurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: %s durations must be in [%d, %d]",
				ErrInvalidInput, st, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
		if rule.MinDurationMinutes > rule.DefaultDurationMinutes ||
			rule.DefaultDurationMinutes > rule.MaxDurationMinutes {
			return fmt.Errorf("%w: %s requires min <= default <= max", ErrInvalidInput, st)
		}
		if rule.SetupWeight < 0 {
			return fmt.Errorf("%w: %s setup_weight must be non-negative", ErrInvalidInput, st)
		}
	}
	return nil
}
