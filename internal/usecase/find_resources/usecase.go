package find_resources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// UseCase use case для поиска ресурсов, свободных на интервал
type UseCase struct {
	bookingRepo  BookingRepository
	engines      EngineProvider
	catalog      ResourceCatalog
	clientClient ClientServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	engines EngineProvider,
	catalog ResourceCatalog,
	clientClient ClientServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		engines:      engines,
		catalog:      catalog,
		clientClient: clientClient,
		logger:       logger,
	}
}

// Execute выполняет use case поиска ресурсов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := normalizeRequest(req); err != nil {
		uc.logger.Warn("FindResources: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем движок с правилами тенанта
	engine, err := uc.engines.Engine(ctx, req.TenantID, req.Category)
	if err != nil {
		uc.logger.Error("FindResources: failed to build engine for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to build engine: %v", ErrInternal, err)
	}

	// 3. Получаем пул ресурсов
	resources, err := uc.catalog.Pool(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("FindResources: failed to get resources: %v", err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	// 4. Получаем бронирования за сутки начала интервала (дневной лимит) с буфером
	rules := engine.Rules()
	dayStart := time.Date(req.Start.Year(), req.Start.Month(), req.Start.Day(), 0, 0, 0, 0, req.Start.Location())
	from := minTime(dayStart, req.Start.Add(-rules.Buffer()))
	to := maxTime(dayStart.AddDate(0, 0, 1), req.End.Add(rules.Buffer()))

	ids := make([]int64, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	bookings, err := uc.bookingRepo.GetByResourcesInRange(ctx, ids, from, to)
	if err != nil {
		uc.logger.Error("FindResources: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Подбираем ресурсы
	matches, err := engine.FindAvailableResources(req.Start, req.End, req.Category, req.Urgency,
		bookings, resources, req.PreferredResourceID)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidInput) {
			uc.logger.Warn("FindResources: engine rejected input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 6. Считаем цену для клиента
	discount := uc.getClient(ctx, req).Discount()
	durationMinutes := int(req.End.Sub(req.Start) / time.Minute)

	result := make([]Match, 0, len(matches))
	for _, m := range matches {
		result = append(result, Match{
			Resource:  m.Resource,
			Score:     m.Score,
			Preferred: m.Preferred,
			Price:     scheduling.CalculatePrice(m.Resource.HourlyRate, durationMinutes, req.Urgency, discount),
		})
	}

	uc.logger.Info("FindResources: %d of %d resources free for tenant=%d, %s-%s",
		len(result), len(resources), req.TenantID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	return &Response{Matches: result}, nil
}

func (uc *UseCase) getClient(ctx context.Context, req *Request) *domain.Client {
	if req.ClientID == nil || uc.clientClient == nil {
		return nil
	}
	client, err := uc.clientClient.GetClientWithGracefulDegradation(ctx, req.TenantID, *req.ClientID)
	if err != nil {
		uc.logger.Warn("FindResources: no profile for client=%d: %v", *req.ClientID, err)
		return nil
	}
	return client
}

func normalizeRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenant_id must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if req.Urgency == "" {
		req.Urgency = domain.UrgencyStandard
	}
	return nil
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
