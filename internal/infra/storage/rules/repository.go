package rules

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

var rulesColumns = []string{
	"id",
	"tenant_id",
	"category",
	"vertical",
	"advance_booking_hours",
	"max_advance_booking_days",
	"cancellation_notice_hours",
	"buffer_minutes",
	"allow_double_booking",
	"deposit_required",
	"standard_hours",
	"emergency_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил бронирования тенантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndCategory получает правила ровно одного уровня:
// category == nil - общие правила тенанта, иначе правила категории
func (r *Repository) GetByTenantAndCategory(ctx context.Context, tenantID int64, category *string) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rulesColumns...).
		From("booking_rules").
		Where(squirrel.Eq{"tenant_id": tenantID})

	// Фильтрация по category (NULL или конкретное значение)
	if category == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *category})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndCategory - build select query: %v", ErrBuildQuery, err)
	}

	rules, err := scanRules(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndCategory - scan rules: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetWithHierarchy получает правила с учетом иерархии приоритетов:
// 1. Правила для конкретной категории (tenantID, category)
// 2. Общие правила тенанта (tenantID, NULL)
//
// Если правила не найдены ни на одном уровне, возвращает ErrRulesNotFound,
// и вызывающий подставляет умолчания вертикали
func (r *Repository) GetWithHierarchy(ctx context.Context, tenantID int64, category string) (*domain.BookingRules, error) {
	// 1. Пробуем получить правила категории
	if category != "" {
		rules, err := r.GetByTenantAndCategory(ctx, tenantID, &category)
		if err == nil {
			return rules, nil
		}
		if err != ErrRulesNotFound {
			return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (category): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить общие правила тенанта
	rules, err := r.GetByTenantAndCategory(ctx, tenantID, nil)
	if err == nil {
		return rules, nil
	}
	if err != ErrRulesNotFound {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (tenant): %v", ErrExecQuery, err)
	}

	return nil, ErrRulesNotFound
}

// Upsert создает или заменяет правила уровня (tenant_id, category)
func (r *Repository) Upsert(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	standardHours, err := json.Marshal(rules.StandardHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - standard hours: %v", ErrEncodeHours, err)
	}
	emergencyHours, err := json.Marshal(rules.EmergencyHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - emergency hours: %v", ErrEncodeHours, err)
	}

	// Частичные уникальные индексы требуют повторить предикат в ON CONFLICT
	conflict := "ON CONFLICT (tenant_id) WHERE category IS NULL"
	if rules.Category != nil {
		conflict = "ON CONFLICT (tenant_id, category) WHERE category IS NOT NULL"
	}

	query, args, err := psqlbuilder.Insert("booking_rules").
		Columns(
			"tenant_id",
			"category",
			"vertical",
			"advance_booking_hours",
			"max_advance_booking_days",
			"cancellation_notice_hours",
			"buffer_minutes",
			"allow_double_booking",
			"deposit_required",
			"standard_hours",
			"emergency_hours",
		).
		Values(
			rules.TenantID,
			rules.Category,
			rules.Vertical,
			rules.AdvanceBookingHours,
			rules.MaxAdvanceBookingDays,
			rules.CancellationNoticeHours,
			rules.BufferMinutes,
			rules.AllowDoubleBooking,
			rules.DepositRequired,
			standardHours,
			emergencyHours,
		).
		Suffix(conflict + ` DO UPDATE SET
			vertical = EXCLUDED.vertical,
			advance_booking_hours = EXCLUDED.advance_booking_hours,
			max_advance_booking_days = EXCLUDED.max_advance_booking_days,
			cancellation_notice_hours = EXCLUDED.cancellation_notice_hours,
			buffer_minutes = EXCLUDED.buffer_minutes,
			allow_double_booking = EXCLUDED.allow_double_booking,
			deposit_required = EXCLUDED.deposit_required,
			standard_hours = EXCLUDED.standard_hours,
			emergency_hours = EXCLUDED.emergency_hours,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rules.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return rules, nil
}

// DeleteByTenantAndCategory удаляет правила одного уровня
func (r *Repository) DeleteByTenantAndCategory(ctx context.Context, tenantID int64, category *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("booking_rules").
		Where(squirrel.Eq{"tenant_id": tenantID})

	if category == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"category": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"category": *category})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByTenantAndCategory - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByTenantAndCategory - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByTenantAndCategory - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRulesNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRules(row rowScanner) (*domain.BookingRules, error) {
	var rules domain.BookingRules
	var category sql.NullString
	var standardHours, emergencyHours []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rules.ID,
		&rules.TenantID,
		&category,
		&rules.Vertical,
		&rules.AdvanceBookingHours,
		&rules.MaxAdvanceBookingDays,
		&rules.CancellationNoticeHours,
		&rules.BufferMinutes,
		&rules.AllowDoubleBooking,
		&rules.DepositRequired,
		&standardHours,
		&emergencyHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(standardHours, &rules.StandardHours); err != nil {
		return nil, fmt.Errorf("standard_hours: %w", err)
	}
	if err := json.Unmarshal(emergencyHours, &rules.EmergencyHours); err != nil {
		return nil, fmt.Errorf("emergency_hours: %w", err)
	}

	if category.Valid {
		rules.Category = &category.String
	}
	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return &rules, nil
}
