package validate_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	validateBooking "github.com/m04kA/SMC-BookingEngine/internal/usecase/validate_booking"
)

const (
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase  ValidateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ValidateBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings/validate
// Нарушения правил не являются ошибкой запроса: ответ всегда 200 с результатом проверки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathID(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings/validate - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var body handlers.BookingRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := body.ToDomain(h.location)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	useCaseReq := &validateBooking.Request{
		TenantID: tenantID,
		Booking:  booking,
	}
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		useCaseReq.ClientID = &userID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/bookings/validate - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tenants/{id}/bookings/validate - Failed to validate booking: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/bookings/validate - Validated: tenant_id=%d, valid=%t, errors=%d, warnings=%d",
		tenantID, result.Result.IsValid, len(result.Result.Errors), len(result.Result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromValidationResult(result.Result))
}
