package models

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Source уровень иерархии, с которого взяты правила
type Source string

const (
	SourceCategory Source = "category"
	SourceTenant   Source = "tenant"
	SourceDefault  Source = "vertical_default"
)

// Request модели

// PutRulesRequest запрос на создание или обновление правил уровня (tenant, category)
// Все поля опциональны - непереданные берутся из действующих правил
type PutRulesRequest struct {
	TenantID                int64                 `json:"-"`
	Category                *string               `json:"category,omitempty"` // NULL = для всех категорий
	AdvanceBookingHours     *int                  `json:"advanceBookingHours,omitempty"`
	MaxAdvanceBookingDays   *int                  `json:"maxAdvanceBookingDays,omitempty"`
	CancellationNoticeHours *int                  `json:"cancellationNoticeHours,omitempty"`
	BufferMinutes           *int                  `json:"bufferMinutes,omitempty"`
	AllowDoubleBooking      *bool                 `json:"allowDoubleBooking,omitempty"`
	DepositRequired         *bool                 `json:"depositRequired,omitempty"`
	StandardHours           *domain.BusinessHours `json:"standardHours,omitempty"`
	EmergencyHours          *domain.BusinessHours `json:"emergencyHours,omitempty"`
}

// ApplyToRules применяет переданные поля к правилам
func (r *PutRulesRequest) ApplyToRules(rules *domain.BookingRules) {
	if r.AdvanceBookingHours != nil {
		rules.AdvanceBookingHours = *r.AdvanceBookingHours
	}
	if r.MaxAdvanceBookingDays != nil {
		rules.MaxAdvanceBookingDays = *r.MaxAdvanceBookingDays
	}
	if r.CancellationNoticeHours != nil {
		rules.CancellationNoticeHours = *r.CancellationNoticeHours
	}
	if r.BufferMinutes != nil {
		rules.BufferMinutes = *r.BufferMinutes
	}
	if r.AllowDoubleBooking != nil {
		rules.AllowDoubleBooking = *r.AllowDoubleBooking
	}
	if r.DepositRequired != nil {
		rules.DepositRequired = *r.DepositRequired
	}
	if r.StandardHours != nil {
		rules.StandardHours = *r.StandardHours
	}
	if r.EmergencyHours != nil {
		rules.EmergencyHours = *r.EmergencyHours
	}
}

// Response модели

// RulesResponse действующие правила бронирования
type RulesResponse struct {
	ID                      *int64               `json:"id,omitempty"` // nil для умолчаний вертикали
	TenantID                int64                `json:"tenantId"`
	Category                *string              `json:"category,omitempty"`
	Vertical                string               `json:"vertical"`
	Source                  Source               `json:"source"`
	AdvanceBookingHours     int                  `json:"advanceBookingHours"`
	MaxAdvanceBookingDays   int                  `json:"maxAdvanceBookingDays"`
	CancellationNoticeHours int                  `json:"cancellationNoticeHours"`
	BufferMinutes           int                  `json:"bufferMinutes"`
	AllowDoubleBooking      bool                 `json:"allowDoubleBooking"`
	DepositRequired         bool                 `json:"depositRequired"`
	StandardHours           domain.BusinessHours `json:"standardHours"`
	EmergencyHours          domain.BusinessHours `json:"emergencyHours"`
	UpdatedAt               *time.Time           `json:"updatedAt,omitempty"`
}

// FromDomainRules конвертирует domain модель в DTO
func FromDomainRules(r domain.BookingRules, source Source) *RulesResponse {
	resp := &RulesResponse{
		TenantID:                r.TenantID,
		Category:                r.Category,
		Vertical:                r.Vertical,
		Source:                  source,
		AdvanceBookingHours:     r.AdvanceBookingHours,
		MaxAdvanceBookingDays:   r.MaxAdvanceBookingDays,
		CancellationNoticeHours: r.CancellationNoticeHours,
		BufferMinutes:           r.BufferMinutes,
		AllowDoubleBooking:      r.AllowDoubleBooking,
		DepositRequired:         r.DepositRequired,
		StandardHours:           r.StandardHours,
		EmergencyHours:          r.EmergencyHours,
	}
	if source != SourceDefault {
		resp.ID = &r.ID
		resp.UpdatedAt = &r.UpdatedAt
	}
	return resp
}
