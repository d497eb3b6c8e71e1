package cancel_booking

import (
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancelledBy        string  `json:"cancelledBy,omitempty"` // client (по умолчанию) или tenant
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		UserID:             userID,
		CancelledBy:        models.Canceller(r.CancelledBy),
		CancellationReason: reason,
	}
}
