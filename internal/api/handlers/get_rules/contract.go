package get_rules

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/service/rules/models"
)

type RulesService interface {
	Get(ctx context.Context, tenantID int64, category *string) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
