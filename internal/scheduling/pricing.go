package scheduling

import (
	"math"
	"sort"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

const (
	// минимальная оплата - полчаса по ставке ресурса
	priceFloorFraction = 0.5

	longSessionHours     = 8.0
	shortSessionHours    = 0.5
	wideRateSpreadFactor = 2.0
)

var urgencyMultipliers = map[domain.Urgency]float64{
	domain.UrgencyStandard:  1.0,
	domain.UrgencyUrgent:    1.5,
	domain.UrgencyEmergency: 2.0,
}

// UrgencyMultiplier множитель цены для срочности; неизвестная срочность - как standard
func UrgencyMultiplier(urgency domain.Urgency) float64 {
	if m, ok := urgencyMultipliers[urgency]; ok {
		return m
	}
	return 1.0
}

// PriceFloor минимальная сумма для ставки
func PriceFloor(hourlyRate float64) float64 {
	return hourlyRate * priceFloorFraction
}

// CalculatePrice = rate*minutes/60 * множитель срочности * (1 - discount),
// не ниже PriceFloor, с округлением до целой единицы валюты.
func CalculatePrice(hourlyRate float64, durationMinutes int, urgency domain.Urgency, discount float64) float64 {
	base := hourlyRate * float64(durationMinutes) / 60
	price := base * UrgencyMultiplier(urgency) * (1 - discount)

	floor := PriceFloor(hourlyRate)
	rounded := math.Round(math.Max(price, floor))
	if rounded < floor {
		rounded = math.Ceil(floor)
	}
	return rounded
}

// CostEstimate диапазон цен по ресурсам, способным обслужить категорию
type CostEstimate struct {
	MinCost         float64
	MaxCost         float64
	AverageCost     float64
	ResourceCount   int
	Recommendations []string
}

// EstimateCost оценивает estimatedHours по всем активным подходящим ресурсам
// (для emergency - только дежурным). Скидка клиента не применяется.
func (e *Engine) EstimateCost(
	category string,
	estimatedHours float64,
	resources []domain.Resource,
	urgency domain.Urgency,
) (CostEstimate, error) {
	if err := e.checkCategory(category); err != nil {
		return CostEstimate{}, err
	}
	if err := checkUrgency(urgency); err != nil {
		return CostEstimate{}, err
	}
	if estimatedHours <= 0 || math.IsNaN(estimatedHours) || math.IsInf(estimatedHours, 0) {
		return CostEstimate{}, inputError("estimatedHours", "must be positive")
	}

	minutes := int(math.Round(estimatedHours * 60))
	prices := make([]float64, 0, len(resources))
	for _, r := range resources {
		if !r.IsActive || !e.capable(r, category) {
			continue
		}
		if urgency == domain.UrgencyEmergency && !r.AvailableForEmergency {
			continue
		}
		prices = append(prices, CalculatePrice(r.HourlyRate, minutes, urgency, 0))
	}

	estimate := CostEstimate{ResourceCount: len(prices)}
	if len(prices) == 0 {
		estimate.Recommendations = append(estimate.Recommendations,
			"No resources are currently able to serve this category; try another date or category")
		return estimate, nil
	}

	sort.Float64s(prices)
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	estimate.MinCost = prices[0]
	estimate.MaxCost = prices[len(prices)-1]
	estimate.AverageCost = math.Round(sum / float64(len(prices)))
	estimate.Recommendations = costRecommendations(estimate, estimatedHours, urgency)

	return estimate, nil
}

func costRecommendations(estimate CostEstimate, hours float64, urgency domain.Urgency) []string {
	recs := make([]string, 0)
	if urgency.IsElevated() {
		recs = append(recs,
			"Urgent and emergency bookings carry a surcharge; standard scheduling is cheaper when timing allows")
	}
	if hours > longSessionHours {
		recs = append(recs, "Sessions longer than 8 hours are best split across several bookings")
	}
	if hours < shortSessionHours {
		recs = append(recs, "Bookings shorter than 30 minutes are charged the half-hour minimum")
	}
	if estimate.MinCost > 0 && estimate.MaxCost > estimate.MinCost*wideRateSpreadFactor {
		recs = append(recs, "Rates vary widely between resources; compare profiles before booking")
	}
	return recs
}
