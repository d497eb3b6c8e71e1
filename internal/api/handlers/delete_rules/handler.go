package delete_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/service/rules"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgNotFound        = "правила не найдены"
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

// Handle DELETE /api/v1/tenants/{tenantId}/rules
// Query params: category (опционально, без нее удаляются общие правила тенанта)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathID(r, "tenantId")
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/rules - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	if err := h.service.Delete(r.Context(), tenantID, category); err != nil {
		switch {
		case errors.Is(err, rules.ErrRulesNotFound):
			h.logger.Warn("DELETE /tenants/{id}/rules - Rules not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /tenants/{id}/rules - Failed to delete rules: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{id}/rules - Rules deleted: tenant_id=%d", tenantID)
	w.WriteHeader(http.StatusNoContent)
}
