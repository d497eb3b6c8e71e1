package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	resourceRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/resource"
	"github.com/m04kA/SMC-BookingEngine/pkg/ttlcache"
)

// Service сервис пулов ресурсов и комнат тенанта.
// Пулы читаются часто (каждый расчет слотов), поэтому кэшируются на короткое время.
// Внутри транзакции создания бронирования кэш не используется.
type Service struct {
	resourceRepo ResourceRepository
	pools        *ttlcache.Cache[int64, []domain.Resource]
	rooms        *ttlcache.Cache[int64, []domain.Room]
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// WithCache включает кэш пулов и комнат по тенанту
func (s *Service) WithCache(size int, ttl time.Duration) *Service {
	s.pools = ttlcache.New[int64, []domain.Resource](size, ttl)
	s.rooms = ttlcache.New[int64, []domain.Room](size, ttl)
	return s
}

// Pool получает активные ресурсы тенанта
func (s *Service) Pool(ctx context.Context, tenantID int64) ([]domain.Resource, error) {
	if s.pools != nil {
		if pool, ok := s.pools.Get(tenantID); ok {
			return pool, nil
		}
	}

	pool, err := s.resourceRepo.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Pool: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Pool - repository error: %v", ErrInternal, err)
	}

	if s.pools != nil {
		s.pools.Set(tenantID, pool)
	}
	return pool, nil
}

// Rooms получает комнаты тенанта
func (s *Service) Rooms(ctx context.Context, tenantID int64) ([]domain.Room, error) {
	if s.rooms != nil {
		if rooms, ok := s.rooms.Get(tenantID); ok {
			return rooms, nil
		}
	}

	rooms, err := s.resourceRepo.GetRoomsByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Rooms: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Rooms - repository error: %v", ErrInternal, err)
	}

	if s.rooms != nil {
		s.rooms.Set(tenantID, rooms)
	}
	return rooms, nil
}

// GetByID получает ресурс по ID, в обход кэша
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetByID: repository error for resource=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return resource, nil
}

// Invalidate сбрасывает кэш тенанта
func (s *Service) Invalidate(tenantID int64) {
	if s.pools != nil {
		s.pools.Invalidate(tenantID)
		s.rooms.Invalidate(tenantID)
	}
}
