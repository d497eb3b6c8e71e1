package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingDate     = "дата обязательна"
	msgMissingCategory = "категория обязательна"
	msgInvalidParams   = "некорректные параметры запроса, дата ожидается в формате YYYY-MM-DD"
	msgInvalidInput    = "некорректные параметры поиска слотов"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/slots
// Query params: date (required, YYYY-MM-DD), category (required), duration, urgency, clientId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathID(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slots - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	category := query.Get("category")
	if category == "" {
		h.logger.Warn("GET /tenants/{id}/slots - Missing category")
		handlers.RespondBadRequest(w, msgMissingCategory)
		return
	}

	clientID, err := handlers.QueryID(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slots - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Формируем запрос к use case (с парсингом даты в часовом поясе тенанта)
	useCaseReq, err := ToUseCaseRequest(tenantID, clientID, dateStr, category, query.Get("duration"), query.Get("urgency"), h.location)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/slots - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /tenants/{id}/slots - Failed to get slots: tenant_id=%d, category=%s, error=%v",
				tenantID, category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/slots - Slots retrieved successfully: tenant_id=%d, date=%s, slots_count=%d, available=%d",
		tenantID, dateStr, len(result.Slots), result.AvailableCount())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
