package get_rules

import (
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/rules
// Query params: category (опционально)
// Если правил нет ни на одном уровне, возвращаются умолчания вертикали
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathID(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/rules - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	result, err := h.service.Get(r.Context(), tenantID, category)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/rules - Failed to get rules: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/rules - Rules retrieved successfully: tenant_id=%d, source=%s",
		tenantID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
