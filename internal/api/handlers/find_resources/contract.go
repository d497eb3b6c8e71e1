package find_resources

import (
	"context"

	findResources "github.com/m04kA/SMC-BookingEngine/internal/usecase/find_resources"
)

type FindResourcesUseCase interface {
	Execute(ctx context.Context, req *findResources.Request) (*findResources.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
