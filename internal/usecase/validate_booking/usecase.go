package validate_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
)

// UseCase use case для проверки запроса на бронирование
type UseCase struct {
	engines      EngineProvider
	catalog      ResourceCatalog
	clientClient ClientServiceClient
	metrics      *metrics.Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engines EngineProvider,
	catalog ResourceCatalog,
	clientClient ClientServiceClient,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		engines:      engines,
		catalog:      catalog,
		clientClient: clientClient,
		metrics:      m,
		logger:       logger,
	}
}

// Execute выполняет use case проверки запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenant_id must be positive", ErrInvalidInput)
	}
	req.Booking.Category = strings.TrimSpace(req.Booking.Category)
	if req.Booking.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if req.Booking.Urgency == "" {
		req.Booking.Urgency = domain.UrgencyStandard
	}

	// 2. Собираем движок с правилами тенанта
	engine, err := uc.engines.Engine(ctx, req.TenantID, req.Booking.Category)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to build engine for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to build engine: %v", ErrInternal, err)
	}

	// 3. Получаем ресурсы и комнаты
	resources, err := uc.catalog.Pool(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get resources: %v", err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}
	rooms, err := uc.catalog.Rooms(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to get rooms: %v", ErrInternal, err)
	}

	// 4. Получаем профиль клиента
	var client *domain.Client
	if req.ClientID != nil && uc.clientClient != nil {
		client, err = uc.clientClient.GetClientWithGracefulDegradation(ctx, req.TenantID, *req.ClientID)
		if err != nil {
			uc.logger.Warn("ValidateBooking: no profile for client=%d: %v", *req.ClientID, err)
			client = nil
		}
	}

	// 5. Проверяем запрос
	result, err := engine.ValidateRequest(req.Booking, resources, client, rooms)
	if err != nil {
		uc.logger.Warn("ValidateBooking: malformed request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	outcome := "valid"
	switch {
	case !result.IsValid:
		outcome = "invalid"
	case len(result.Warnings) > 0:
		outcome = "valid_with_warnings"
	}
	if uc.metrics != nil {
		uc.metrics.ValidationOutcomes.WithLabelValues(outcome).Inc()
	}

	uc.logger.Info("ValidateBooking: tenant=%d outcome=%s errors=%d warnings=%d",
		req.TenantID, outcome, len(result.Errors), len(result.Warnings))

	return &Response{Result: result}, nil
}
