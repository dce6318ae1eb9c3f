package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/chemlab-portal/booking-service/internal/domain"
	"github.com/chemlab-portal/booking-service/pkg/dbmetrics"
	"github.com/chemlab-portal/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий настроек окна бронирования
//
// Настройки версионированы: каждое сохранение добавляет новую строку,
// действующей считается последняя по updated_at. История правок остаётся
// доступной для аудита.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetLatest получает действующие настройки (последние по updated_at)
func (r *Repository) GetLatest(ctx context.Context) (*domain.BookingWindowSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"is_regular_booking_enabled",
		"regular_allowed_days",
		"message",
		"is_emergency_booking_open",
		"emergency_booking_start",
		"emergency_booking_end",
		"emergency_allowed_days",
		"emergency_message",
		"updated_by",
		"created_at",
		"updated_at",
	).
		From("booking_settings").
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatest - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingWindowSettings
	var regularDays, emergencyDays pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.IsRegularBookingEnabled,
		&regularDays,
		&s.Message,
		&s.IsEmergencyBookingOpen,
		&s.EmergencyBookingStart,
		&s.EmergencyBookingEnd,
		&emergencyDays,
		&s.EmergencyMessage,
		&s.UpdatedBy,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatest - scan settings: %v", ErrScanRow, err)
	}

	s.RegularAllowedDays = []string(regularDays)
	s.EmergencyAllowedDays = []string(emergencyDays)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Save сохраняет новую версию настроек
func (r *Repository) Save(ctx context.Context, s *domain.BookingWindowSettings) (*domain.BookingWindowSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"is_regular_booking_enabled",
			"regular_allowed_days",
			"message",
			"is_emergency_booking_open",
			"emergency_booking_start",
			"emergency_booking_end",
			"emergency_allowed_days",
			"emergency_message",
			"updated_by",
		).
		Values(
			s.IsRegularBookingEnabled,
			pq.Array(s.RegularAllowedDays),
			s.Message,
			s.IsEmergencyBookingOpen,
			s.EmergencyBookingStart,
			s.EmergencyBookingEnd,
			pq.Array(s.EmergencyAllowedDays),
			s.EmergencyMessage,
			s.UpdatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
