package find_resources

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Request модель запроса на поиск свободных ресурсов
type Request struct {
	TenantID            int64
	ClientID            *int64 // Для персональной цены (опционально)
	Start               time.Time
	End                 time.Time
	Category            string
	Urgency             domain.Urgency
	PreferredResourceID *int64
}

// Response модель ответа со списком ресурсов, лучшие первыми
type Response struct {
	Matches []Match
}

// Match свободный ресурс с оценкой и ценой
type Match struct {
	Resource  domain.Resource
	Score     float64
	Preferred bool
	Price     float64
}
