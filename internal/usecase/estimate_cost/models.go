package estimate_cost

import (
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// Request модель запроса на оценку стоимости
type Request struct {
	TenantID       int64
	Category       string
	EstimatedHours float64
	Urgency        domain.Urgency
}

// Response диапазон стоимости по ресурсам, способным оказать услугу
type Response struct {
	Category string
	Urgency  domain.Urgency
	Estimate scheduling.CostEstimate
}
