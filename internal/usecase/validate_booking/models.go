package validate_booking

import (
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// Request модель запроса на проверку бронирования без записи
type Request struct {
	TenantID int64
	ClientID *int64 // Профиль клиента опционален
	Booking  domain.BookingRequest
}

// Response результат проверки: ошибки и предупреждения
type Response struct {
	Result scheduling.ValidationResult
}
