package padding

import (
	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/internal/scheduling/services"
)

// Config константы паддинга между бронированиями.
// Значения независимы и композируемы: как их комбинировать, решает проверка
// доступности, сам калькулятор контекста бронирований не хранит.
type Config struct {
	BufferMinutes          int // Минимальный разрыв между занятыми окнами двух бронирований
	BaseSetupMinutes       int // Базовое время монтажа оборудования
	ExtendedSetupMinutes   int // Время монтажа при ExtendedSetupThreshold и более услугах
	ExtendedSetupThreshold int // Порог количества уникальных услуг для расширенного монтажа
	BreakdownMinutes       int // Время демонтажа после окончания
}

// DefaultConfig возвращает паддинг из доменных констант
func DefaultConfig() Config {
	return Config{
		BufferMinutes:          domain.DefaultBufferMinutes,
		BaseSetupMinutes:       domain.DefaultBaseSetupMinutes,
		ExtendedSetupMinutes:   domain.DefaultExtendedSetupMinutes,
		ExtendedSetupThreshold: domain.DefaultExtendedSetupThreshold,
		BreakdownMinutes:       domain.DefaultBreakdownMinutes,
	}
}

// FromScheduleConfig собирает паддинг из конфигурации расписания
func FromScheduleConfig(cfg *domain.ScheduleConfig) Config {
	return Config{
		BufferMinutes:          cfg.BufferMinutes,
		BaseSetupMinutes:       cfg.BaseSetupMinutes,
		ExtendedSetupMinutes:   cfg.ExtendedSetupMinutes,
		ExtendedSetupThreshold: cfg.ExtendedSetupThreshold,
		BreakdownMinutes:       cfg.BreakdownMinutes,
	}
}

// Buffer возвращает минимальный разрыв между бронированиями в минутах.
// Не зависит от набора услуг.
func (c Config) Buffer() int {
	return c.BufferMinutes
}

// Setup возвращает время монтажа в минутах для набора услуг.
// При ExtendedSetupThreshold и более уникальных услугах требуется больше
// оборудования и координации, поэтому время монтажа увеличивается.
func (c Config) Setup(set []domain.ServiceType) int {
	if services.DistinctCount(set) >= c.ExtendedSetupThreshold {
		return c.ExtendedSetupMinutes
	}
	return c.BaseSetupMinutes
}

// Breakdown возвращает время демонтажа в минутах.
// Фиксировано и не зависит от количества услуг.
func (c Config) Breakdown(set []domain.ServiceType) int {
	return c.BreakdownMinutes
}
