package domain

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/pkg/types"
)

// ScheduleConfig represents the tunable scheduling configuration:
// calendar window, slot granularity, padding constants and per-service rules.
// Stored as a single row; falls back to the defaults below when absent.
type ScheduleConfig struct {
	ID                     int64
	OpenTime               types.TimeString
	CloseTime              types.TimeString
	SlotGranularityMinutes int
	BufferMinutes          int
	BaseSetupMinutes       int
	ExtendedSetupMinutes   int
	ExtendedSetupThreshold int
	BreakdownMinutes       int
	Timezone               string
	ServiceRules           ServiceRules
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// CrossesMidnight returns true if the booking window spans two calendar dates
func (c *ScheduleConfig) CrossesMidnight() bool {
	return !c.CloseTime.IsAfter(c.OpenTime)
}

// Location resolves the configured timezone, falling back to local time
func (c *ScheduleConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DefaultScheduleConfig returns the built-in configuration used when
// no row exists in storage
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		OpenTime:               DefaultOpenTime,
		CloseTime:              DefaultCloseTime,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		BufferMinutes:          DefaultBufferMinutes,
		BaseSetupMinutes:       DefaultBaseSetupMinutes,
		ExtendedSetupMinutes:   DefaultExtendedSetupMinutes,
		ExtendedSetupThreshold: DefaultExtendedSetupThreshold,
		BreakdownMinutes:       DefaultBreakdownMinutes,
		ServiceRules:           DefaultServiceRules(),
	}
}
