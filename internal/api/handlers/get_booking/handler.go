package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidTenantID  = "некорректный ID тенанта"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Query params: tenantId (опционально) - бронирование другого тенанта отдается как 404
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	tenantID, err := handlers.QueryID(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid tenant scope: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to load booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Существование чужого бронирования не раскрываем
	if tenantID != nil && booking.TenantID != *tenantID {
		h.logger.Warn("GET /bookings/{id} - Booking outside tenant scope: booking_id=%d, tenant_id=%d, scope=%d",
			bookingID, booking.TenantID, *tenantID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking loaded: booking_id=%d, tenant_id=%d, resource_id=%d, status=%s",
		bookingID, booking.TenantID, booking.ResourceID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
