package domain

// Default rules values
const (
	DefaultAdvanceBookingHours     = 2
	DefaultMaxAdvanceBookingDays   = 90
	DefaultCancellationNoticeHours = 24
	DefaultBufferMinutes           = 15
	DefaultSlotDurationMinutes     = 60
)

// Business validation constants
const (
	MinAdvanceBookingHours      = 0
	MaxAdvanceBookingHours      = 168 // 1 week
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MaxCancellationNoticeHours  = 720 // 30 days
	MaxBufferMinutes            = 240
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 720
	MaxContextLength            = 2000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при проверке конфликтов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByTenant,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
