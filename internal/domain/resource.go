package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// BreakInterval is a time-of-day interval during which a resource cannot be booked
type BreakInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DaySchedule is the working window for one weekday
type DaySchedule struct {
	IsOpen bool             `json:"isOpen"`
	Start  types.TimeString `json:"start,omitempty"`
	End    types.TimeString `json:"end,omitempty"`
	Breaks []BreakInterval  `json:"breaks,omitempty"`
}

// WeeklySchedule holds one DaySchedule per weekday
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForDay returns the schedule for the given weekday
func (w WeeklySchedule) ForDay(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Uniform builds a schedule with the same day for every weekday in days
func Uniform(day DaySchedule, days ...time.Weekday) WeeklySchedule {
	return WeeklySchedule{}.With(day, days...)
}

// With returns a copy of w with day set for every weekday in days
func (w WeeklySchedule) With(day DaySchedule, days ...time.Weekday) WeeklySchedule {
	for _, d := range days {
		switch d {
		case time.Monday:
			w.Monday = day
		case time.Tuesday:
			w.Tuesday = day
		case time.Wednesday:
			w.Wednesday = day
		case time.Thursday:
			w.Thursday = day
		case time.Friday:
			w.Friday = day
		case time.Saturday:
			w.Saturday = day
		case time.Sunday:
			w.Sunday = day
		}
	}
	return w
}

// Weekdays is Monday through Friday
var Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// AllWeek is every day of the week
var AllWeek = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// BusinessHours is a tenant-level opening table. Breaks are ignored.
type BusinessHours = WeeklySchedule

// Resource is an interchangeable bookable entity (staff member, consultant, room)
type Resource struct {
	ID              int64
	TenantID        int64
	Name            string
	Profession      string
	Specializations []string
	WorkingHours    WeeklySchedule
	HourlyRate      float64
	// MaxBookingsPerDay is the daily capacity cap; 0 means uncapped
	MaxBookingsPerDay     int
	AvailableForEmergency bool
	IsActive              bool
	Rating                float64 // 0-5
	ExperienceYears       int
	TotalBookings         int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Room is a physical or virtual space a booking can take place in
type Room struct {
	ID            int64
	TenantID      int64
	Name          string
	SupportsVideo bool
	IsActive      bool
}
