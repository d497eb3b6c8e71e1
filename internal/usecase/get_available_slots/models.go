package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	TenantID        int64          // ID тенанта
	ClientID        *int64         // ID клиента (опционально, для персональной цены)
	Date            time.Time      // Дата в часовом поясе тенанта
	Category        string         // Категория услуги
	DurationMinutes int            // Длительность слота (0 - по умолчанию)
	Urgency         domain.Urgency // Срочность (пусто - standard)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	TenantID        int64
	Category        string
	Urgency         domain.Urgency
	DurationMinutes int
	DepositRequired bool
	Slots           []domain.Slot
}

// AvailableCount возвращает количество доступных слотов
func (r *Response) AvailableCount() int {
	count := 0
	for _, s := range r.Slots {
		if s.Available {
			count++
		}
	}
	return count
}
