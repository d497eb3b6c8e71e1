package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
)

// SlotResponse HTTP response model слота
type SlotResponse struct {
	Start        string   `json:"start"` // RFC 3339
	End          string   `json:"end"`
	Available    bool     `json:"available"`
	ResourceID   *int64   `json:"resourceId,omitempty"`
	ResourceName string   `json:"resourceName,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TenantID        int64          `json:"tenantId"`
	Date            string         `json:"date"` // YYYY-MM-DD
	Category        string         `json:"category"`
	Urgency         string         `json:"urgency"`
	DurationMinutes int            `json:"durationMinutes"`
	DepositRequired bool           `json:"depositRequired"`
	AvailableCount  int            `json:"availableCount"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest разбирает query параметры в модель use case.
// Дата интерпретируется в часовом поясе тенанта.
func ToUseCaseRequest(tenantID int64, clientID *int64, dateStr, category, durationStr, urgency string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, fmt.Errorf("duration: %w", err)
		}
	}

	return &getAvailableSlots.Request{
		TenantID:        tenantID,
		ClientID:        clientID,
		Date:            date,
		Category:        category,
		DurationMinutes: duration,
		Urgency:         domain.Urgency(urgency),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:        s.Start.Format(time.RFC3339),
			End:          s.End.Format(time.RFC3339),
			Available:    s.Available,
			ResourceID:   s.ResourceID,
			ResourceName: s.ResourceName,
			Price:        s.Price,
		})
	}

	return &AvailableSlotsResponse{
		TenantID:        resp.TenantID,
		Date:            resp.Date.Format(domain.DateFormat),
		Category:        resp.Category,
		Urgency:         string(resp.Urgency),
		DurationMinutes: resp.DurationMinutes,
		DepositRequired: resp.DepositRequired,
		AvailableCount:  resp.AvailableCount(),
		Slots:           slots,
	}
}
