package client_history

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// UseCase use case для анализа истории бронирований клиента
type UseCase struct {
	bookingRepo  BookingRepository
	engines      EngineProvider
	clientClient ClientServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	engines EngineProvider,
	clientClient ClientServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		engines:      engines,
		clientClient: clientClient,
		logger:       logger,
	}
}

// Execute выполняет use case анализа истории
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.TenantID <= 0 || req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: tenant_id and client_id must be positive", ErrInvalidInput)
	}

	// 2. Получаем профиль клиента; без профиля анализируем только бронирования
	client, profileAvailable := uc.getClient(ctx, req)

	// 3. Получаем историю бронирований
	bookings, err := uc.bookingRepo.GetByClientID(ctx, req.TenantID, req.ClientID)
	if err != nil {
		uc.logger.Error("ClientHistory: failed to get bookings for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// История анализируется целиком, включая отмененные бронирования
	// 4. Пороги советов берутся из движка тенанта
	engine, err := uc.engines.Engine(ctx, req.TenantID, "")
	if err != nil {
		uc.logger.Error("ClientHistory: failed to build engine for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to build engine: %v", ErrInternal, err)
	}

	summary, err := engine.AnalyzeHistory(client, bookings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("ClientHistory: tenant=%d client=%d bookings=%d advisories=%d",
		req.TenantID, req.ClientID, summary.TotalBookings, len(summary.Advisories))

	return &Response{Summary: summary, ProfileAvailable: profileAvailable}, nil
}

func (uc *UseCase) getClient(ctx context.Context, req *Request) (*domain.Client, bool) {
	fallback := &domain.Client{ID: req.ClientID, Tier: domain.TierStandard}
	if uc.clientClient == nil {
		return fallback, false
	}

	client, err := uc.clientClient.GetClientWithGracefulDegradation(ctx, req.TenantID, req.ClientID)
	if err != nil {
		uc.logger.Warn("ClientHistory: no profile for client=%d: %v", req.ClientID, err)
		return fallback, false
	}
	return client, true
}
