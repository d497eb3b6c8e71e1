package rules

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// RulesRepository интерфейс репозитория правил бронирования
type RulesRepository interface {
	GetByTenantAndCategory(ctx context.Context, tenantID int64, category *string) (*domain.BookingRules, error)
	GetWithHierarchy(ctx context.Context, tenantID int64, category string) (*domain.BookingRules, error)
	Upsert(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
	DeleteByTenantAndCategory(ctx context.Context, tenantID int64, category *string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
