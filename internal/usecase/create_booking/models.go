package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID                 int64                  // ID тенанта
	ClientID                 int64                  // ID клиента (из X-User-ID)
	Start                    time.Time              // Начало интервала
	End                      time.Time              // Конец интервала
	Category                 string                 // Категория услуги
	Urgency                  domain.Urgency         // Срочность (пусто - standard)
	ContactPhone             string                 // Контактный телефон
	Mode                     domain.InteractionMode // Формат встречи (пусто - in_person)
	PreferredResourceID      *int64                 // Предпочитаемый ресурс (опционально)
	Context                  *string                // Описание задачи (опционально)
	BillingMode              domain.BillingMode     // Способ оплаты (пусто - fixed)
	EstimatedDurationMinutes *int                   // Оценка длительности для почасовой оплаты
	FollowUp                 bool                   // Нужна ли follow-up встреча
}

// ToDomain конвертирует запрос в доменную модель
func (r *Request) ToDomain() domain.BookingRequest {
	return domain.BookingRequest{
		Start:                    r.Start,
		End:                      r.End,
		Category:                 r.Category,
		Urgency:                  r.Urgency,
		ContactPhone:             r.ContactPhone,
		Mode:                     r.Mode,
		PreferredResourceID:      r.PreferredResourceID,
		Context:                  r.Context,
		BillingMode:              r.BillingMode,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		FollowUp:                 r.FollowUp,
	}
}

// DurationMinutes возвращает длительность запрошенного интервала
func (r *Request) DurationMinutes() int {
	return int(r.End.Sub(r.Start) / time.Minute)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking         *domain.Booking    // Созданное бронирование
	Preferred       bool               // Назначен ли предпочитаемый ресурс
	DepositRequired bool               // Требуется ли депозит
	Warnings        []scheduling.Issue // Предупреждения валидации
}
