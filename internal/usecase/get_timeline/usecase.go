package get_timeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	resourceService "github.com/m04kA/SMC-BookingEngine/internal/service/resources"
)

// UseCase use case для построения плана встречи
type UseCase struct {
	bookingRepo BookingRepository
	resources   ResourceGetter
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, resources ResourceGetter, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		resources:   resources,
		logger:      logger,
	}
}

// Execute выполняет use case построения плана
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("GetTimeline: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Получаем ресурс; удаленный ресурс не мешает плану, имя берется из бронирования
	resource := domain.Resource{}
	found, err := uc.resources.GetByID(ctx, booking.ResourceID)
	switch {
	case err == nil:
		resource = *found
	case errors.Is(err, resourceService.ErrResourceNotFound):
		uc.logger.Warn("GetTimeline: resource id=%d of booking id=%d not found", booking.ResourceID, booking.ID)
	default:
		uc.logger.Error("GetTimeline: failed to get resource id=%d: %v", booking.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 4. Строим план
	activities, err := scheduling.GenerateTimeline(*booking, resource)
	if err != nil {
		uc.logger.Error("GetTimeline: booking id=%d has an invalid interval: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{BookingID: booking.ID, Activities: activities}, nil
}
