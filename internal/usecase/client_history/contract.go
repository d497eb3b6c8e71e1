package client_history

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByClientID(ctx context.Context, tenantID, clientID int64) ([]domain.Booking, error)
}

// EngineProvider собирает движок с правилами тенанта
type EngineProvider interface {
	Engine(ctx context.Context, tenantID int64, category string) (*scheduling.Engine, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	GetClientWithGracefulDegradation(ctx context.Context, tenantID, clientID int64) (*domain.Client, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
