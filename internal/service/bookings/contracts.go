package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]domain.Booking, error)
	GetByClientID(ctx context.Context, tenantID, clientID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string, cancelledAt time.Time) error
}

// EngineProvider собирает движок с действующими правилами тенанта
type EngineProvider interface {
	Engine(ctx context.Context, tenantID int64, category string) (*scheduling.Engine, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
