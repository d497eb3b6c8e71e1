package estimate_cost

import (
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	estimateCost "github.com/m04kA/SMC-BookingEngine/internal/usecase/estimate_cost"
)

// EstimateRequest HTTP request model
type EstimateRequest struct {
	Category       string  `json:"category"`
	EstimatedHours float64 `json:"estimatedHours"`
	Urgency        string  `json:"urgency,omitempty"`
}

// EstimateResponse HTTP response model
type EstimateResponse struct {
	Category        string   `json:"category"`
	Urgency         string   `json:"urgency"`
	MinCost         float64  `json:"minCost"`
	MaxCost         float64  `json:"maxCost"`
	AverageCost     float64  `json:"averageCost"`
	ResourceCount   int      `json:"resourceCount"`
	Recommendations []string `json:"recommendations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EstimateRequest) ToUseCaseRequest(tenantID int64) *estimateCost.Request {
	return &estimateCost.Request{
		TenantID:       tenantID,
		Category:       r.Category,
		EstimatedHours: r.EstimatedHours,
		Urgency:        domain.Urgency(r.Urgency),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *estimateCost.Response) *EstimateResponse {
	recommendations := resp.Estimate.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}
	return &EstimateResponse{
		Category:        resp.Category,
		Urgency:         string(resp.Urgency),
		MinCost:         resp.Estimate.MinCost,
		MaxCost:         resp.Estimate.MaxCost,
		AverageCost:     resp.Estimate.AverageCost,
		ResourceCount:   resp.Estimate.ResourceCount,
		Recommendations: recommendations,
	}
}
