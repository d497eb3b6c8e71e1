package resource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

var resourceColumns = []string{
	"id",
	"tenant_id",
	"name",
	"profession",
	"specializations",
	"working_hours",
	"hourly_rate",
	"max_bookings_per_day",
	"available_for_emergency",
	"is_active",
	"rating",
	"experience_years",
	"total_bookings",
	"created_at",
	"updated_at",
}

// Repository репозиторий ресурсов (сотрудников, консультантов) и комнат тенанта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресурс по ID, включая неактивные
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	resource, err := scanResource(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	return resource, nil
}

// GetActiveByTenant получает пул активных ресурсов тенанта, отсортированный по ID
func (r *Repository) GetActiveByTenant(ctx context.Context, tenantID int64) ([]domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"tenant_id": tenantID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]domain.Resource, 0)
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByTenant - scan row: %v", ErrScanRow, err)
		}
		resources = append(resources, *resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTenant - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// GetRoomsByTenant получает все комнаты тенанта
func (r *Repository) GetRoomsByTenant(ctx context.Context, tenantID int64) ([]domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "supports_video", "is_active").
		From("rooms").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.TenantID, &room.Name, &room.SupportsVideo, &room.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetRoomsByTenant - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByTenant - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var resource domain.Resource
	var workingHours []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&resource.ID,
		&resource.TenantID,
		&resource.Name,
		&resource.Profession,
		pq.Array(&resource.Specializations),
		&workingHours,
		&resource.HourlyRate,
		&resource.MaxBookingsPerDay,
		&resource.AvailableForEmergency,
		&resource.IsActive,
		&resource.Rating,
		&resource.ExperienceYears,
		&resource.TotalBookings,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(workingHours, &resource.WorkingHours); err != nil {
		return nil, fmt.Errorf("working_hours: %w", err)
	}
	resource.CreatedAt = createdAt.Time
	resource.UpdatedAt = updatedAt.Time

	return &resource, nil
}
