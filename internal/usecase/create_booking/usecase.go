package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

// Причины конфликтов для метрики BookingConflicts
const (
	conflictMatcher       = "matcher"
	conflictConstraint    = "exclusion_constraint"
	conflictSerialization = "serialization"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	engines      EngineProvider
	catalog      ResourceCatalog
	clientClient ClientServiceClient
	txManager    TransactionManager
	metrics      *metrics.Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	engines EngineProvider,
	catalog ResourceCatalog,
	clientClient ClientServiceClient,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		engines:      engines,
		catalog:      catalog,
		clientClient: clientClient,
		txManager:    txManager,
		metrics:      m,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Валидация идет по снимку вне транзакции, затем в сериализуемой транзакции
// бронирования ресурсов перечитываются с блокировкой и подбор ресурса повторяется.
// Последний рубеж - exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, client=%d, category=%s, start=%s, end=%s, urgency=%s",
		req.TenantID, req.ClientID, req.Category, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), req.Urgency)

	// 1. Валидация входных данных
	if err := normalizeRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем движок с правилами тенанта
	engine, err := uc.engines.Engine(ctx, req.TenantID, req.Category)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to build engine for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to build engine: %v", ErrInternal, err)
	}
	rules := engine.Rules()

	// 3. Получаем ресурсы и комнаты тенанта
	resources, err := uc.catalog.Pool(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get resources: %v", err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}
	rooms, err := uc.catalog.Rooms(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to get rooms: %v", ErrInternal, err)
	}

	// 4. Получаем профиль клиента (без профиля цена без скидки)
	client := uc.getClient(ctx, req)

	// 5. Бизнес-валидация запроса
	validation, err := engine.ValidateRequest(req.ToDomain(), resources, client, rooms)
	if err != nil {
		uc.logger.Warn("CreateBooking: malformed request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	uc.observeValidation(validation)
	if !validation.IsValid {
		uc.logger.Warn("CreateBooking: request rejected with %d errors", len(validation.Errors))
		return nil, &ValidationError{Result: validation}
	}

	var (
		created   *domain.Booking
		preferred bool
	)

	// 6. Подбор ресурса и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Перечитываем бронирования ресурсов за день с блокировкой (FOR UPDATE)
		from, to := lockWindow(req.Start, req.End, rules.Buffer())
		bookings, err := uc.bookingRepo.GetByResourcesInRange(txCtx, resourceIDs(resources), from, to)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 6.2. Повторяем подбор ресурса на свежем снимке
		matches, err := engine.FindAvailableResources(req.Start, req.End, req.Category, req.Urgency,
			bookings, resources, req.PreferredResourceID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if len(matches) == 0 {
			uc.logger.Warn("CreateBooking: no resource can take %s-%s", req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))
			uc.observeConflict(conflictMatcher)
			return ErrSlotNotAvailable
		}
		best := matches[0]

		// 6.3. Считаем цену для клиента
		price := scheduling.CalculatePrice(best.Resource.HourlyRate, req.DurationMinutes(), req.Urgency, client.Discount())

		// 6.4. Создаем бронирование
		booking := &domain.Booking{
			TenantID:      req.TenantID,
			ClientID:      req.ClientID,
			ResourceID:    best.Resource.ID,
			Category:      req.Category,
			Urgency:       req.Urgency,
			Mode:          req.Mode,
			StartAt:       req.Start,
			EndAt:         req.End,
			BufferMinutes: rules.BufferMinutes,
			Exclusive:     !rules.AllowDoubleBooking,
			Status:        initialStatus(rules),
			FollowUp:      req.FollowUp,
			ResourceName:  best.Resource.Name,
			Price:         price,
			ContactPhone:  req.ContactPhone,
			Context:       req.Context,
		}

		result, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: exclusion constraint rejected resource=%d", best.Resource.ID)
				uc.observeConflict(conflictConstraint)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		created = result
		preferred = best.Preferred
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
			uc.observeConflict(conflictSerialization)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, resource=%d, price=%.2f",
		created.ID, created.ResourceID, created.Price)

	return &Response{
		Booking:         created,
		Preferred:       preferred,
		DepositRequired: validation.DepositRequired,
		Warnings:        validation.Warnings,
	}, nil
}

func (uc *UseCase) getClient(ctx context.Context, req *Request) *domain.Client {
	if uc.clientClient == nil {
		return nil
	}
	client, err := uc.clientClient.GetClientWithGracefulDegradation(ctx, req.TenantID, req.ClientID)
	if err != nil {
		uc.logger.Warn("CreateBooking: no profile for client=%d, pricing without discount: %v", req.ClientID, err)
		return nil
	}
	return client
}

func (uc *UseCase) observeValidation(result scheduling.ValidationResult) {
	if uc.metrics == nil {
		return
	}
	outcome := "valid"
	switch {
	case !result.IsValid:
		outcome = "invalid"
	case len(result.Warnings) > 0:
		outcome = "valid_with_warnings"
	}
	uc.metrics.ValidationOutcomes.WithLabelValues(outcome).Inc()
}

func (uc *UseCase) observeConflict(reason string) {
	if uc.metrics != nil {
		uc.metrics.BookingConflicts.WithLabelValues(reason).Inc()
	}
}

// normalizeRequest проверяет обязательные поля и подставляет значения по умолчанию
func normalizeRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenant_id must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client_id must be positive", ErrInvalidInput)
	}
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if req.Urgency == "" {
		req.Urgency = domain.UrgencyStandard
	}
	if req.Mode == "" {
		req.Mode = domain.ModeInPerson
	}
	if req.BillingMode == "" {
		req.BillingMode = domain.BillingFixed
	}
	return nil
}

// lockWindow покрывает сутки начала бронирования (для дневного лимита ресурса)
// и сам интервал с буфером
func lockWindow(start, end time.Time, buffer time.Duration) (time.Time, time.Time) {
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	from := dayStart
	if s := start.Add(-buffer); s.Before(from) {
		from = s
	}
	to := dayEnd
	if e := end.Add(buffer); e.After(to) {
		to = e
	}
	return from, to
}

func initialStatus(rules domain.BookingRules) domain.BookingStatus {
	if rules.DepositRequired {
		return domain.StatusPending
	}
	return domain.StatusConfirmed
}

func resourceIDs(resources []domain.Resource) []int64 {
	ids := make([]int64, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	return ids
}
