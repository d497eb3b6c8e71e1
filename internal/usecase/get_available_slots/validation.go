package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// normalizeRequest проверяет запрос и подставляет значения по умолчанию
func normalizeRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenant_id must be positive", ErrInvalidInput)
	}
	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: client_id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.Urgency == "" {
		req.Urgency = domain.UrgencyStandard
	}
	if !req.Urgency.IsValid() {
		return fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, req.Urgency)
	}
	return nil
}
