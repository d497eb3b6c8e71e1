package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	rulesRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/rules"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/internal/service/rules/models"
	"github.com/m04kA/SMC-BookingEngine/internal/verticals"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
	"github.com/m04kA/SMC-BookingEngine/pkg/ttlcache"
)

type cacheKey struct {
	tenantID int64
	category string
}

type resolved struct {
	rules  domain.BookingRules
	source models.Source
}

// Service сервис правил бронирования тенантов.
// Разрешает иерархию правил и собирает по ним движок планирования вертикали.
type Service struct {
	rulesRepo RulesRepository
	profile   verticals.Profile
	clock     scheduling.TimeProvider
	cache     *ttlcache.Cache[cacheKey, resolved]
	logger    Logger
}

// NewService создает новый экземпляр сервиса правил.
// Без WithCache правила читаются из БД на каждый запрос.
func NewService(
	rulesRepo RulesRepository,
	profile verticals.Profile,
	clock scheduling.TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		rulesRepo: rulesRepo,
		profile:   profile,
		clock:     clock,
		logger:    logger,
	}
}

// WithCache включает кэш разрешенных правил
func (s *Service) WithCache(size int, ttl time.Duration) *Service {
	s.cache = ttlcache.New[cacheKey, resolved](size, ttl)
	return s
}

// Engine собирает движок планирования с действующими правилами тенанта для категории
func (s *Service) Engine(ctx context.Context, tenantID int64, category string) (*scheduling.Engine, error) {
	r, err := s.resolve(ctx, tenantID, category)
	if err != nil {
		return nil, err
	}

	engine, err := s.profile.EngineWithRules(r.rules, s.clock)
	if err != nil {
		// Сохраненные правила прошли валидацию при записи, сюда попадаем только при порче данных
		s.logger.Error("Engine: tenant=%d category=%q has unusable rules: %v", tenantID, category, err)
		return nil, fmt.Errorf("%w: Engine - build engine: %v", ErrInternal, err)
	}

	return engine, nil
}

// Get получает действующие правила с учетом иерархии
// Приоритет: category > tenant > умолчания вертикали
func (s *Service) Get(ctx context.Context, tenantID int64, category *string) (*models.RulesResponse, error) {
	c := ptr.Value(category)
	s.logger.Info("Get: fetching rules for tenant=%d, category=%q", tenantID, c)

	r, err := s.resolve(ctx, tenantID, c)
	if err != nil {
		return nil, err
	}

	return models.FromDomainRules(r.rules, r.source), nil
}

// Put создает или обновляет правила уровня (tenant, category).
// Непереданные поля берутся из действующих правил этого уровня.
func (s *Service) Put(ctx context.Context, req *models.PutRulesRequest) (*models.RulesResponse, error) {
	category := normalizeCategory(req.Category)
	s.logger.Info("Put: updating rules for tenant=%d, category=%v", req.TenantID, ptr.Value(category))

	// 1. Проверяем, что категория обслуживается вертикалью
	if category != nil && !s.profile.Matcher.HasCategory(*category) {
		s.logger.Warn("Put: category %q is not served by vertical %s", *category, s.profile.Name)
		return nil, fmt.Errorf("%w: unknown category %s", ErrInvalidInput, *category)
	}

	// 2. Берем действующие правила уровня как основу
	base, err := s.rulesRepo.GetByTenantAndCategory(ctx, req.TenantID, category)
	if err != nil && !errors.Is(err, rulesRepo.ErrRulesNotFound) {
		s.logger.Error("Put: repository error: %v", err)
		return nil, fmt.Errorf("%w: Put - repository error: %v", ErrInternal, err)
	}

	var rules domain.BookingRules
	if base != nil {
		rules = *base
	} else {
		effective, err := s.resolve(ctx, req.TenantID, ptr.Value(category))
		if err != nil {
			return nil, err
		}
		rules = effective.rules
		rules.ID = 0
	}
	rules.TenantID = req.TenantID
	rules.Category = category
	rules.Vertical = s.profile.Name

	// 3. Применяем изменения и валидируем
	req.ApplyToRules(&rules)
	if err := rules.Validate(); err != nil {
		s.logger.Warn("Put: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохраняем
	saved, err := s.rulesRepo.Upsert(ctx, &rules)
	if err != nil {
		s.logger.Error("Put: repository error: %v", err)
		return nil, fmt.Errorf("%w: Put - repository error: %v", ErrInternal, err)
	}

	// Общие правила тенанта влияют на все категории
	s.purge()

	source := models.SourceTenant
	if category != nil {
		source = models.SourceCategory
	}

	s.logger.Info("Put: saved rules id=%d for tenant=%d", saved.ID, saved.TenantID)
	return models.FromDomainRules(*saved, source), nil
}

// Delete удаляет правила уровня (tenant, category)
func (s *Service) Delete(ctx context.Context, tenantID int64, category *string) error {
	category = normalizeCategory(category)
	s.logger.Info("Delete: deleting rules for tenant=%d, category=%v", tenantID, ptr.Value(category))

	if err := s.rulesRepo.DeleteByTenantAndCategory(ctx, tenantID, category); err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Warn("Delete: no rules for tenant=%d, category=%v", tenantID, ptr.Value(category))
			return ErrRulesNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.purge()
	return nil
}

func (s *Service) resolve(ctx context.Context, tenantID int64, category string) (resolved, error) {
	key := cacheKey{tenantID: tenantID, category: strings.ToLower(strings.TrimSpace(category))}

	if s.cache != nil {
		if r, ok := s.cache.Get(key); ok {
			return r, nil
		}
	}

	r := resolved{}
	stored, err := s.rulesRepo.GetWithHierarchy(ctx, tenantID, key.category)
	switch {
	case err == nil:
		r.rules = *stored
		r.source = models.SourceTenant
		if stored.Category != nil {
			r.source = models.SourceCategory
		}
	case errors.Is(err, rulesRepo.ErrRulesNotFound):
		r.rules = s.profile.Rules
		r.rules.TenantID = tenantID
		r.source = models.SourceDefault
	default:
		s.logger.Error("resolve: repository error for tenant=%d: %v", tenantID, err)
		return resolved{}, fmt.Errorf("%w: resolve - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.Set(key, r)
	}
	return r, nil
}

func (s *Service) purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	c := strings.ToLower(strings.TrimSpace(*category))
	if c == "" {
		return nil
	}
	return &c
}
