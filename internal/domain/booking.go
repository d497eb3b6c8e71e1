package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledByTenant BookingStatus = "cancelled_by_tenant"
	StatusNoShow            BookingStatus = "no_show"
)

// Booking is a committed reservation of one resource for one interval.
// The scheduling engine consumes snapshots of these as existing bookings.
type Booking struct {
	ID         int64
	TenantID   int64
	ClientID   int64
	ResourceID int64
	Category   string
	Urgency    Urgency
	Mode       InteractionMode
	StartAt    time.Time
	EndAt      time.Time
	// BufferMinutes is the rules buffer at commit time; the storage exclusion
	// constraint works on the buffered range.
	BufferMinutes int
	// Exclusive is false when the tenant's rules allow double booking
	Exclusive bool
	Status    BookingStatus
	FollowUp  bool

	// Denormalized data for history
	ResourceName string
	Price        float64
	ContactPhone string
	Context      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes returns the booked length in whole minutes
func (b *Booking) DurationMinutes() int {
	return int(b.EndAt.Sub(b.StartAt) / time.Minute)
}

// BufferedEnd is the end of the interval the booking occupies, buffer included
func (b *Booking) BufferedEnd() time.Time {
	return b.EndAt.Add(time.Duration(b.BufferMinutes) * time.Minute)
}

// IsActive returns true if the booking occupies its resource
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByTenant &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByTenant
}

// IsCompleted returns true if the booking is completed or was a no-show
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// BookingsFilter фильтр для получения бронирований тенанта
type BookingsFilter struct {
	TenantID        int64          // Обязательный параметр
	ResourceIDs     []int64        // Фильтр по ресурсам (пусто - все ресурсы)
	From            *time.Time     // Начало периода (включительно)
	To              *time.Time     // Конец периода (не включительно)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, no-show)
}
