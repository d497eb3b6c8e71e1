package update_rules

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/service/rules/models"
)

type RulesService interface {
	Put(ctx context.Context, req *models.PutRulesRequest) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
