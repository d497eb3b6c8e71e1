package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByResourcesInRange внутри транзакции блокирует строки (FOR UPDATE)
	GetByResourcesInRange(ctx context.Context, resourceIDs []int64, from, to time.Time) ([]domain.Booking, error)
}

// EngineProvider собирает движок с правилами тенанта
type EngineProvider interface {
	Engine(ctx context.Context, tenantID int64, category string) (*scheduling.Engine, error)
}

// ResourceCatalog интерфейс каталога ресурсов и комнат тенанта
type ResourceCatalog interface {
	Pool(ctx context.Context, tenantID int64) ([]domain.Resource, error)
	Rooms(ctx context.Context, tenantID int64) ([]domain.Room, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	GetClientWithGracefulDegradation(ctx context.Context, tenantID, clientID int64) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
