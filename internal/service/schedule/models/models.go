package models

import (
	"time"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
)

// ServiceRuleResponse правила длительности и веса для типа услуги
type ServiceRuleResponse struct {
	MinDurationMinutes     int `json:"minDurationMinutes"`
	MaxDurationMinutes     int `json:"maxDurationMinutes"`
	DefaultDurationMinutes int `json:"defaultDurationMinutes"`
	SetupWeight            int `json:"setupWeight"`
}

// ScheduleConfigResponse текущая конфигурация расписания
type ScheduleConfigResponse struct {
	OpenTime               string                         `json:"openTime"`
	CloseTime              string                         `json:"closeTime"`
	SlotGranularityMinutes int                            `json:"slotGranularityMinutes"`
	BufferMinutes          int                            `json:"bufferMinutes"`
	BaseSetupMinutes       int                            `json:"baseSetupMinutes"`
	ExtendedSetupMinutes   int                            `json:"extendedSetupMinutes"`
	ExtendedSetupThreshold int                            `json:"extendedSetupThreshold"`
	BreakdownMinutes       int                            `json:"breakdownMinutes"`
	Timezone               string                         `json:"timezone"`
	ServiceRules           map[string]ServiceRuleResponse `json:"serviceRules"`
}

// UpdateScheduleConfigRequest запрос на обновление конфигурации расписания
// Nil-поля не изменяются
type UpdateScheduleConfigRequest struct {
	OpenTime               *string                        `json:"openTime,omitempty"`
	CloseTime              *string                        `json:"closeTime,omitempty"`
	SlotGranularityMinutes *int                           `json:"slotGranularityMinutes,omitempty"`
	BufferMinutes          *int                           `json:"bufferMinutes,omitempty"`
	BaseSetupMinutes       *int                           `json:"baseSetupMinutes,omitempty"`
	ExtendedSetupMinutes   *int                           `json:"extendedSetupMinutes,omitempty"`
	ExtendedSetupThreshold *int                           `json:"extendedSetupThreshold,omitempty"`
	BreakdownMinutes       *int                           `json:"breakdownMinutes,omitempty"`
	Timezone               *string                        `json:"timezone,omitempty"`
	ServiceRules           map[string]ServiceRuleResponse `json:"serviceRules,omitempty"`
}

// BlockDateRequest запрос на блокировку даты
type BlockDateRequest struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// FromDomainScheduleConfig конвертирует доменную конфигурацию в модель ответа
func FromDomainScheduleConfig(cfg *domain.ScheduleConfig) *ScheduleConfigResponse {
	rules := make(map[string]ServiceRuleResponse, len(cfg.ServiceRules))
	for st, rule := range cfg.ServiceRules {
		rules[string(st)] = ServiceRuleResponse{
			MinDurationMinutes:     rule.MinDurationMinutes,
			MaxDurationMinutes:     rule.MaxDurationMinutes,
			DefaultDurationMinutes: rule.DefaultDurationMinutes,
			SetupWeight:            rule.SetupWeight,
		}
	}

	return &ScheduleConfigResponse{
		OpenTime:               string(cfg.OpenTime),
		CloseTime:              string(cfg.CloseTime),
		SlotGranularityMinutes: cfg.SlotGranularityMinutes,
		BufferMinutes:          cfg.BufferMinutes,
		BaseSetupMinutes:       cfg.BaseSetupMinutes,
		ExtendedSetupMinutes:   cfg.ExtendedSetupMinutes,
		ExtendedSetupThreshold: cfg.ExtendedSetupThreshold,
		BreakdownMinutes:       cfg.BreakdownMinutes,
		Timezone:               cfg.Timezone,
		ServiceRules:           rules,
	}
}

// FromDomainBlockedDate конвертирует доменную заблокированную дату в модель ответа
func FromDomainBlockedDate(bd *domain.BlockedDate) *BlockedDateResponse {
	return &BlockedDateResponse{
		ID:        bd.ID,
		Date:      bd.Date.Format(domain.DateFormat),
		Reason:    bd.Reason,
		CreatedAt: bd.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список заблокированных дат
func FromDomainBlockedDateList(items []*domain.BlockedDate) *BlockedDateListResponse {
	out := make([]BlockedDateResponse, len(items))
	for i, bd := range items {
		out[i] = *FromDomainBlockedDate(bd)
	}
	return &BlockedDateListResponse{BlockedDates: out}
}
