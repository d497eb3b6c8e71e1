package find_resources

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	findResources "github.com/m04kA/SMC-BookingEngine/internal/usecase/find_resources"
)

const (
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput       = "некорректные параметры поиска"
)

type Handler struct {
	useCase  FindResourcesUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase FindResourcesUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/resources/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathID(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/resources/search - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req SearchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/resources/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Персональная цена считается, только если клиент представился
	var clientID *int64
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		clientID = &userID
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, clientID, h.location)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/resources/search - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findResources.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/resources/search - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tenants/{id}/resources/search - Failed to find resources: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/resources/search - Resources found: tenant_id=%d, count=%d",
		tenantID, len(result.Matches))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
