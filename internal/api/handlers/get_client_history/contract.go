package get_client_history

import (
	"context"

	clientHistory "github.com/m04kA/SMC-BookingEngine/internal/usecase/client_history"
)

type ClientHistoryUseCase interface {
	Execute(ctx context.Context, req *clientHistory.Request) (*clientHistory.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
