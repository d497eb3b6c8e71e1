package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
)

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking         *models.BookingResponse  `json:"booking"`
	Preferred       bool                     `json:"preferred"`
	DepositRequired bool                     `json:"depositRequired"`
	Warnings        []handlers.IssueResponse `json:"warnings"`
}

// ToUseCaseRequest конвертирует тело запроса в модель use case
func ToUseCaseRequest(tenantID, clientID int64, body *handlers.BookingRequestBody, loc *time.Location) (*createBooking.Request, error) {
	req, err := body.ToDomain(loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TenantID:                 tenantID,
		ClientID:                 clientID,
		Start:                    req.Start,
		End:                      req.End,
		Category:                 req.Category,
		Urgency:                  req.Urgency,
		ContactPhone:             req.ContactPhone,
		Mode:                     req.Mode,
		PreferredResourceID:      req.PreferredResourceID,
		Context:                  req.Context,
		BillingMode:              req.BillingMode,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		FollowUp:                 req.FollowUp,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:         models.FromDomainBooking(resp.Booking),
		Preferred:       resp.Preferred,
		DepositRequired: resp.DepositRequired,
		Warnings:        handlers.FromIssues(resp.Warnings),
	}
}
