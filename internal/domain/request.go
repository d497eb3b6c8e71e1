package domain

import "time"

// Urgency tier of a booking request
type Urgency string

const (
	UrgencyStandard  Urgency = "standard"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// IsValid reports whether u is a known tier
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyStandard, UrgencyUrgent, UrgencyEmergency:
		return true
	}
	return false
}

// IsElevated returns true for urgent and emergency requests
func (u Urgency) IsElevated() bool {
	return u == UrgencyUrgent || u == UrgencyEmergency
}

// InteractionMode describes how the client and resource meet
type InteractionMode string

const (
	ModeInPerson InteractionMode = "in_person"
	ModeRemote   InteractionMode = "remote"
	ModePhone    InteractionMode = "phone"
	ModeHybrid   InteractionMode = "hybrid"
)

// IsValid reports whether m is a known mode
func (m InteractionMode) IsValid() bool {
	switch m {
	case ModeInPerson, ModeRemote, ModePhone, ModeHybrid:
		return true
	}
	return false
}

// RequiresVideo returns true if the mode needs a video-capable room
func (m InteractionMode) RequiresVideo() bool {
	return m == ModeRemote || m == ModeHybrid
}

// BillingMode describes how the booking is charged
type BillingMode string

const (
	BillingFixed  BillingMode = "fixed"
	BillingHourly BillingMode = "hourly"
)

// IsValid reports whether b is a known billing mode
func (b BillingMode) IsValid() bool {
	return b == BillingFixed || b == BillingHourly
}

// BookingRequest is a fully formed request validated before commit
type BookingRequest struct {
	Start               time.Time
	End                 time.Time
	Category            string
	Urgency             Urgency
	ContactPhone        string
	Mode                InteractionMode
	PreferredResourceID *int64
	Context             *string
	BillingMode         BillingMode
	// EstimatedDurationMinutes is the client's estimate for hourly billing
	EstimatedDurationMinutes *int
	FollowUp                 bool
}

// DurationMinutes returns the requested length in whole minutes
func (r *BookingRequest) DurationMinutes() int {
	return int(r.End.Sub(r.Start) / time.Minute)
}
