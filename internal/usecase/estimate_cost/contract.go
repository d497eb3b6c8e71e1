package estimate_cost

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// EngineProvider собирает движок с правилами тенанта
type EngineProvider interface {
	Engine(ctx context.Context, tenantID int64, category string) (*scheduling.Engine, error)
}

// ResourceCatalog интерфейс каталога ресурсов тенанта
type ResourceCatalog interface {
	Pool(ctx context.Context, tenantID int64) ([]domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
