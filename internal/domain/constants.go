package domain

import "github.com/m04kA/EVT-SchedulingService/pkg/types"

// Default schedule configuration values
const (
	DefaultOpenTime               types.TimeString = "08:00"
	DefaultCloseTime              types.TimeString = "23:00"
	DefaultSlotGranularityMinutes                  = 15

	// Padding defaults: minimum gap between any two bookings, setup/breakdown
	// around a booking's stated time range
	DefaultBufferMinutes          = 30
	DefaultBaseSetupMinutes       = 60
	DefaultExtendedSetupMinutes   = 90
	DefaultExtendedSetupThreshold = 3 // 3+ distinct services require extended setup
	DefaultBreakdownMinutes       = 30
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 120
	MinPaddingMinutes         = 0
	MaxPaddingMinutes         = 240
	MinDurationMinutes        = 15
	MaxDurationMinutes        = 1440 // 24 hours
	MaxNotesLength            = 500
	MaxBlockedReasonLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
