package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/integrations/clientservice"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
)

// UseCase use case для получения слотов с назначенными ресурсами и ценой
type UseCase struct {
	bookingRepo  BookingRepository
	engines      EngineProvider
	catalog      ResourceCatalog
	clientClient ClientServiceClient
	metrics      *metrics.Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	engines EngineProvider,
	catalog ResourceCatalog,
	clientClient ClientServiceClient,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		engines:      engines,
		catalog:      catalog,
		clientClient: clientClient,
		metrics:      m,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := normalizeRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: tenant=%d, category=%s, date=%s, duration=%d, urgency=%s",
		req.TenantID, req.Category, req.Date.Format(domain.DateFormat), req.DurationMinutes, req.Urgency)

	// 2. Собираем движок с правилами тенанта
	engine, err := uc.engines.Engine(ctx, req.TenantID, req.Category)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build engine for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to build engine: %v", ErrInternal, err)
	}
	rules := engine.Rules()

	// 3. Получаем пул ресурсов тенанта
	resources, err := uc.catalog.Pool(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get resources: %v", err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	// 4. Получаем бронирования на день, расширенный на буфер с обеих сторон
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := uc.bookingRepo.GetByResourcesInRange(ctx, resourceIDs(resources),
		dayStart.Add(-rules.Buffer()), dayEnd.Add(rules.Buffer()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Получаем профиль клиента (без профиля цена без скидки)
	client := uc.getClient(ctx, req)

	// 6. Генерируем слоты
	slots, err := engine.GenerateSlots(dayStart, req.Category, req.DurationMinutes, resources, bookings, req.Urgency, client)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidInput) {
			uc.logger.Warn("GetAvailableSlots: engine rejected input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	response := &Response{
		Date:            dayStart,
		TenantID:        req.TenantID,
		Category:        req.Category,
		Urgency:         req.Urgency,
		DurationMinutes: req.DurationMinutes,
		DepositRequired: rules.DepositRequired,
		Slots:           slots,
	}
	uc.observe(response)

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for tenant=%d, date=%s",
		len(slots), response.AvailableCount(), req.TenantID, dayStart.Format(domain.DateFormat))

	return response, nil
}

func (uc *UseCase) getClient(ctx context.Context, req *Request) *domain.Client {
	if req.ClientID == nil || uc.clientClient == nil {
		return nil
	}

	client, err := uc.clientClient.GetClientWithGracefulDegradation(ctx, req.TenantID, *req.ClientID)
	if err != nil {
		if errors.Is(err, clientservice.ErrServiceDegraded) {
			uc.logger.Warn("GetAvailableSlots: client service degraded, pricing without discount")
		} else {
			uc.logger.Info("GetAvailableSlots: no profile for client=%d: %v", *req.ClientID, err)
		}
		return nil
	}
	return client
}

func (uc *UseCase) observe(response *Response) {
	if uc.metrics == nil {
		return
	}
	available := response.AvailableCount()
	urgency := string(response.Urgency)
	uc.metrics.SlotsGenerated.WithLabelValues(urgency, strconv.FormatBool(true)).Add(float64(available))
	uc.metrics.SlotsGenerated.WithLabelValues(urgency, strconv.FormatBool(false)).Add(float64(len(response.Slots) - available))
}

func resourceIDs(resources []domain.Resource) []int64 {
	ids := make([]int64, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	return ids
}
