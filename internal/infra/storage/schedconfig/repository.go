package schedconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"business_id",
	"branch_id",
	"service_id",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"offer_response_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурациями планирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию планирования
func (r *Repository) Create(ctx context.Context, cfg *domain.SchedulingConfig) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_configs").
		Columns(
			"business_id",
			"branch_id",
			"service_id",
			"min_booking_notice_minutes",
			"advance_booking_days",
			"offer_response_minutes",
		).
		Values(
			cfg.BusinessID,
			cfg.BranchID,
			cfg.ServiceID,
			cfg.MinBookingNoticeMinutes,
			cfg.AdvanceBookingDays,
			cfg.OfferResponseMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrConfigExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конкретная услуга в конкретном филиале (branch_id + service_id)
// 2. Конкретная услуга во всех филиалах (service_id, branch_id IS NULL)
// 3. Весь филиал (branch_id, service_id IS NULL)
// 4. Весь бизнес (branch_id IS NULL, service_id IS NULL)
// Если ничего не найдено, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, businessID int64, branchID, serviceID *int64) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Ранжируем специфичность в SQL, чтобы один запрос вернул лучший матч
	query, args, err := psqlbuilder.Select(configColumns...).
		From("scheduling_configs").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Or{
			squirrel.Eq{"branch_id": branchID, "service_id": serviceID},
			squirrel.Eq{"branch_id": nil, "service_id": serviceID},
			squirrel.Eq{"branch_id": branchID, "service_id": nil},
			squirrel.Eq{"branch_id": nil, "service_id": nil},
		}).
		OrderBy(
			"(branch_id IS NOT NULL AND service_id IS NOT NULL) DESC",
			"(service_id IS NOT NULL) DESC",
			"(branch_id IS NOT NULL) DESC",
		).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetAllByBusiness получает все конфигурации бизнеса
func (r *Repository) GetAllByBusiness(ctx context.Context, businessID int64) ([]*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("scheduling_configs").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("branch_id NULLS FIRST", "service_id NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SchedulingConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByBusiness - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Update обновляет параметры конфигурации по ID
func (r *Repository) Update(ctx context.Context, cfg *domain.SchedulingConfig) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("scheduling_configs").
		Set("min_booking_notice_minutes", cfg.MinBookingNoticeMinutes).
		Set("advance_booking_days", cfg.AdvanceBookingDays).
		Set("offer_response_minutes", cfg.OfferResponseMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		Where(squirrel.Eq{"business_id": cfg.BusinessID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// Upsert создает конфигурацию или обновляет существующую для того же уровня иерархии
func (r *Repository) Upsert(ctx context.Context, cfg *domain.SchedulingConfig) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_configs").
		Columns(
			"business_id",
			"branch_id",
			"service_id",
			"min_booking_notice_minutes",
			"advance_booking_days",
			"offer_response_minutes",
		).
		Values(
			cfg.BusinessID,
			cfg.BranchID,
			cfg.ServiceID,
			cfg.MinBookingNoticeMinutes,
			cfg.AdvanceBookingDays,
			cfg.OfferResponseMinutes,
		).
		Suffix(`ON CONFLICT (business_id, COALESCE(branch_id, 0), COALESCE(service_id, 0)) DO UPDATE SET
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			offer_response_minutes = EXCLUDED.offer_response_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute query: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfig сканирует одну строку результата в конфигурацию
func scanConfig(row rowScanner) (*domain.SchedulingConfig, error) {
	var cfg domain.SchedulingConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.BusinessID,
		&cfg.BranchID,
		&cfg.ServiceID,
		&cfg.MinBookingNoticeMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.OfferResponseMinutes,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
