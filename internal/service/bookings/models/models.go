package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Canceller кто отменяет бронирование
type Canceller string

const (
	CancelledByClient Canceller = "client"
	CancelledByTenant Canceller = "tenant"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64     `json:"-"`
	CancelledBy        Canceller `json:"cancelledBy"` // client (по умолчанию) или tenant
	CancellationReason string    `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// GetTenantBookingsRequest запрос на получение бронирований тенанта
type GetTenantBookingsRequest struct {
	TenantID        int64
	ResourceIDs     []int64    // Фильтр по ресурсам (опционально)
	From            *time.Time // Начало периода (опционально)
	To              *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTenantBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TenantID:        r.TenantID,
		ResourceIDs:     r.ResourceIDs,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	TenantID        int64   `json:"tenantId"`
	ClientID        int64   `json:"clientId"`
	ResourceID      int64   `json:"resourceId"`
	ResourceName    string  `json:"resourceName"`
	Category        string  `json:"category"`
	Urgency         string  `json:"urgency"`
	Mode            string  `json:"mode"`
	StartAt         string  `json:"startAt"` // RFC 3339
	EndAt           string  `json:"endAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	FollowUp        bool    `json:"followUp"`
	Price           float64 `json:"price"`
	ContactPhone    string  `json:"contactPhone"`
	Context         *string `json:"context,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		TenantID:           b.TenantID,
		ClientID:           b.ClientID,
		ResourceID:         b.ResourceID,
		ResourceName:       b.ResourceName,
		Category:           b.Category,
		Urgency:            string(b.Urgency),
		Mode:               string(b.Mode),
		StartAt:            b.StartAt.Format(time.RFC3339),
		EndAt:              b.EndAt.Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes(),
		Status:             string(b.Status),
		FollowUp:           b.FollowUp,
		Price:              b.Price,
		ContactPhone:       b.ContactPhone,
		Context:            b.Context,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for i := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(&bookings[i]))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ActiveStatuses {
		if s == valid {
			return s, nil
		}
	}
	for _, valid := range domain.InactiveStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
