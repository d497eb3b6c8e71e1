package get_client_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidClientID = "некорректный ID клиента"
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

// Handle GET /api/v1/tenants/{tenantId}/clients/{clientId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathID(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/bookings - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/bookings - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.service.GetClientBookings(r.Context(), tenantID, clientID)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/clients/{id}/bookings - Failed to get bookings: tenant_id=%d, client_id=%d, error=%v",
			tenantID, clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/clients/{id}/bookings - Bookings retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
