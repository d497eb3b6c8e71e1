package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRules is returned when a rules value breaks its bounds
var ErrInvalidRules = errors.New("invalid booking rules")

// BookingRules is the static policy of one booking domain.
// Supports hierarchical storage:
// 1. Category-specific (tenant_id, category)
// 2. Tenant-wide (tenant_id, NULL)
// 3. Vertical defaults when nothing is stored
type BookingRules struct {
	ID                      int64
	TenantID                int64
	Category                *string // NULL = rules for all categories
	Vertical                string
	AdvanceBookingHours     int // minimum notice
	MaxAdvanceBookingDays   int // 0 = unlimited
	CancellationNoticeHours int
	BufferMinutes           int
	AllowDoubleBooking      bool
	DepositRequired         bool
	StandardHours           BusinessHours
	EmergencyHours          BusinessHours
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsTenantWide returns true if the rules are not bound to a category
func (r *BookingRules) IsTenantWide() bool {
	return r.Category == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (r *BookingRules) HasAdvanceBookingLimit() bool {
	return r.MaxAdvanceBookingDays > 0
}

// Buffer returns the buffer as a duration
func (r *BookingRules) Buffer() time.Duration {
	return time.Duration(r.BufferMinutes) * time.Minute
}

// HoursFor returns the business-hours table for an urgency tier
func (r *BookingRules) HoursFor(urgency Urgency) BusinessHours {
	if urgency == UrgencyEmergency {
		return r.EmergencyHours
	}
	return r.StandardHours
}

// Validate checks value bounds
func (r *BookingRules) Validate() error {
	if r.AdvanceBookingHours < MinAdvanceBookingHours || r.AdvanceBookingHours > MaxAdvanceBookingHours {
		return fmt.Errorf("%w: advanceBookingHours must be between %d and %d",
			ErrInvalidRules, MinAdvanceBookingHours, MaxAdvanceBookingHours)
	}
	if r.MaxAdvanceBookingDays < MinAdvanceBookingDays || r.MaxAdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: maxAdvanceBookingDays must be between %d and %d",
			ErrInvalidRules, MinAdvanceBookingDays, MaxAdvanceBookingDays)
	}
	if r.CancellationNoticeHours < 0 || r.CancellationNoticeHours > MaxCancellationNoticeHours {
		return fmt.Errorf("%w: cancellationNoticeHours must be between 0 and %d",
			ErrInvalidRules, MaxCancellationNoticeHours)
	}
	if r.BufferMinutes < 0 || r.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between 0 and %d", ErrInvalidRules, MaxBufferMinutes)
	}
	if err := validateHours(r.StandardHours); err != nil {
		return fmt.Errorf("%w: standard hours: %v", ErrInvalidRules, err)
	}
	if err := validateHours(r.EmergencyHours); err != nil {
		return fmt.Errorf("%w: emergency hours: %v", ErrInvalidRules, err)
	}
	return nil
}

func validateHours(hours BusinessHours) error {
	for _, day := range AllWeek {
		schedule := hours.ForDay(day)
		if !schedule.IsOpen {
			continue
		}
		if err := schedule.Start.Validate(); err != nil {
			return fmt.Errorf("%s: %v", day, err)
		}
		if err := schedule.End.Validate(); err != nil {
			return fmt.Errorf("%s: %v", day, err)
		}
		if !schedule.Start.IsBefore(schedule.End) {
			return fmt.Errorf("%s: start must be before end", day)
		}
	}
	return nil
}
