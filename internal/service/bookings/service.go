package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	engines      EngineProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	engines EngineProvider,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		engines:      engines,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetTenantBookings получает бронирования тенанта с гибкой фильтрацией
// Поддерживает фильтрацию по ресурсам, периоду, статусу и включению неактивных бронирований
//
// Примеры использования:
// - Все активные бронирования: GetTenantBookings(ctx, &GetTenantBookingsRequest{TenantID: 123})
// - Бронирования за период: From и To
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetTenantBookings: fetching bookings for tenant=%d", req.TenantID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetTenantBookings: empty period for tenant=%d", req.TenantID)
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantBookings: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantBookings: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantBookings: successfully fetched %d bookings for tenant=%d", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// GetClientBookings получает все бронирования клиента у тенанта, включая отмененные
func (s *Service) GetClientBookings(ctx context.Context, tenantID, clientID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for tenant=%d, client=%d", tenantID, clientID)

	bookings, err := s.bookingRepo.GetByClientID(ctx, tenantID, clientID)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), clientID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только своё бронирование и не позже срока отмены из правил
// (cancelled_by_client). Тенант может отменить любое бронирование (cancelled_by_tenant).
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d (%s)", bookingID, req.UserID, req.CancelledBy)

	// 1. Валидируем запрос
	if req.CancelledBy == "" {
		req.CancelledBy = models.CancelledByClient
	}
	if req.CancelledBy != models.CancelledByClient && req.CancelledBy != models.CancelledByTenant {
		return fmt.Errorf("%w: cancelledBy must be client or tenant", ErrInvalidInput)
	}
	reason := strings.TrimSpace(req.CancellationReason)
	if reason == "" {
		return fmt.Errorf("%w: cancellationReason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// 2. Получаем бронирование
	booking, err := s.get(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// 3. Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()
	cancelStatus := domain.StatusCancelledByTenant

	// 4. Клиент: только своё бронирование и с соблюдением срока отмены
	if req.CancelledBy == models.CancelledByClient {
		if booking.ClientID != req.UserID {
			s.logger.Warn("Cancel: user=%d does not own booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		engine, err := s.engines.Engine(ctx, booking.TenantID, booking.Category)
		if err != nil {
			s.logger.Error("Cancel: failed to load rules for tenant=%d: %v", booking.TenantID, err)
			return fmt.Errorf("%w: Cancel - rules: %v", ErrInternal, err)
		}
		rules := engine.Rules()
		deadline := booking.StartAt.Add(-time.Duration(rules.CancellationNoticeHours) * time.Hour)
		if now.After(deadline) {
			s.logger.Warn("Cancel: booking id=%d is inside the %dh cancellation window",
				bookingID, rules.CancellationNoticeHours)
			return fmt.Errorf("%w: must cancel at least %d hours in advance", ErrTooLateToCancel, rules.CancellationNoticeHours)
		}
		cancelStatus = domain.StatusCancelledByClient
	}

	// 5. Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, reason, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Отмененные бронирования не меняются; для отмены используется Cancel
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if newStatus == domain.StatusCancelledByClient || newStatus == domain.StatusCancelledByTenant {
		return fmt.Errorf("%w: use cancel to cancel a booking", ErrInvalidStatus)
	}

	booking, err := s.get(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}
	if booking.IsCancelled() {
		s.logger.Warn("UpdateStatus: booking id=%d is already cancelled", bookingID)
		return fmt.Errorf("%w: booking is cancelled", ErrInvalidStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

func (s *Service) get(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}
