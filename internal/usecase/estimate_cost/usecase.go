package estimate_cost

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// UseCase use case для оценки стоимости услуги
type UseCase struct {
	engines EngineProvider
	catalog ResourceCatalog
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engines EngineProvider, catalog ResourceCatalog, logger Logger) *UseCase {
	return &UseCase{
		engines: engines,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute выполняет use case оценки стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenant_id must be positive", ErrInvalidInput)
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Urgency == "" {
		req.Urgency = domain.UrgencyStandard
	}

	// 2. Собираем движок и получаем ресурсы
	engine, err := uc.engines.Engine(ctx, req.TenantID, req.Category)
	if err != nil {
		uc.logger.Error("EstimateCost: failed to build engine for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to build engine: %v", ErrInternal, err)
	}
	resources, err := uc.catalog.Pool(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("EstimateCost: failed to get resources: %v", err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	// 3. Считаем диапазон
	estimate, err := engine.EstimateCost(req.Category, req.EstimatedHours, resources, req.Urgency)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidInput) {
			uc.logger.Warn("EstimateCost: engine rejected input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("EstimateCost: tenant=%d category=%s hours=%.2f range=%.0f-%.0f over %d resources",
		req.TenantID, req.Category, req.EstimatedHours, estimate.MinCost, estimate.MaxCost, estimate.ResourceCount)

	return &Response{Category: req.Category, Urgency: req.Urgency, Estimate: estimate}, nil
}
