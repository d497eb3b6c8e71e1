package handlers

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// BookingRequestBody тело запроса на бронирование (создание и предварительная проверка)
type BookingRequestBody struct {
	Start                    string  `json:"start"` // RFC 3339
	End                      string  `json:"end"`
	Category                 string  `json:"category"`
	Urgency                  string  `json:"urgency,omitempty"`
	ContactPhone             string  `json:"contactPhone"`
	Mode                     string  `json:"mode,omitempty"`
	PreferredResourceID      *int64  `json:"preferredResourceId,omitempty"`
	Context                  *string `json:"context,omitempty"`
	BillingMode              string  `json:"billingMode,omitempty"`
	EstimatedDurationMinutes *int    `json:"estimatedDurationMinutes,omitempty"`
	FollowUp                 bool    `json:"followUp,omitempty"`
}

// ToDomain конвертирует тело запроса в доменную модель, приводя время к поясу loc
func (b *BookingRequestBody) ToDomain(loc *time.Location) (domain.BookingRequest, error) {
	start, err := ParseTime("start", b.Start, loc)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	end, err := ParseTime("end", b.End, loc)
	if err != nil {
		return domain.BookingRequest{}, err
	}

	return domain.BookingRequest{
		Start:                    start,
		End:                      end,
		Category:                 b.Category,
		Urgency:                  domain.Urgency(b.Urgency),
		ContactPhone:             b.ContactPhone,
		Mode:                     domain.InteractionMode(b.Mode),
		PreferredResourceID:      b.PreferredResourceID,
		Context:                  b.Context,
		BillingMode:              domain.BillingMode(b.BillingMode),
		EstimatedDurationMinutes: b.EstimatedDurationMinutes,
		FollowUp:                 b.FollowUp,
	}, nil
}
