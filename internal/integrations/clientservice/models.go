package clientservice

import "github.com/m04kA/SMC-BookingEngine/internal/domain"

// Profile модель профиля клиента из ClientService
type Profile struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Tier       string  `json:"tier"` // standard, silver, gold, platinum
	TotalSpent float64 `json:"total_spent"`
}

// ToDomain конвертирует профиль в доменную модель
func (p *Profile) ToDomain() *domain.Client {
	return &domain.Client{
		ID:         p.ID,
		Name:       p.Name,
		Tier:       domain.ClientTier(p.Tier),
		TotalSpent: p.TotalSpent,
	}
}
