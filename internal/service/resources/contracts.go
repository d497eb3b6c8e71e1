package resources

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	GetActiveByTenant(ctx context.Context, tenantID int64) ([]domain.Resource, error)
	GetRoomsByTenant(ctx context.Context, tenantID int64) ([]domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
