package get_client_history

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	clientHistory "github.com/m04kA/SMC-BookingEngine/internal/usecase/client_history"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase ClientHistoryUseCase
	logger  Logger
}

func NewHandler(useCase ClientHistoryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/clients/{clientId}/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathID(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/history - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/history - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &clientHistory.Request{TenantID: tenantID, ClientID: clientID})
	if err != nil {
		switch {
		case errors.Is(err, clientHistory.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/clients/{id}/history - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /tenants/{id}/clients/{id}/history - Failed to analyze history: tenant_id=%d, client_id=%d, error=%v",
				tenantID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/clients/{id}/history - History analyzed: tenant_id=%d, client_id=%d, bookings=%d, advisories=%d",
		tenantID, clientID, result.Summary.TotalBookings, len(result.Summary.Advisories))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
