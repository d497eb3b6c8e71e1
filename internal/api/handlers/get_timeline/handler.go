package get_timeline

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	getTimeline "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_timeline"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgInvalidBooking   = "у бронирования некорректный интервал"
)

type Handler struct {
	useCase GetTimelineUseCase
	logger  Logger
}

func NewHandler(useCase GetTimelineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/timeline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/timeline - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getTimeline.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, getTimeline.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/timeline - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getTimeline.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id}/timeline - Invalid booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		default:
			h.logger.Error("GET /bookings/{id}/timeline - Failed to build timeline: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/timeline - Timeline built: booking_id=%d, activities=%d",
		bookingID, len(result.Activities))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
