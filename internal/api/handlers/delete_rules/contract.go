package delete_rules

import (
	"context"
)

type RulesService interface {
	Delete(ctx context.Context, tenantID int64, category *string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
