package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/chemlab-portal/booking-service/internal/domain"
	"github.com/chemlab-portal/booking-service/pkg/dbmetrics"
	"github.com/chemlab-portal/booking-service/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"booked_by",
	"remarks",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами лаборатории
//
// Все переходы статусов выполняются одним условным UPDATE с guard по
// текущему состоянию - отдельной пары "прочитал-записал" здесь нет,
// поэтому гонка двух бронирований решается на уровне строки БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот со статусом available
func (r *Repository) Create(ctx context.Context, slot *domain.LabSlot) (*domain.LabSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lab_slots").
		Columns(
			"slot_date",
			"start_time",
			"end_time",
			"status",
			"remarks",
		).
		Values(
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			domain.SlotAvailable,
			slot.Remarks,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.Status = domain.SlotAvailable
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LabSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("lab_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// List получает слоты с фильтрацией по периоду и статусу
// Сортировка: по дате и времени начала (ASC)
func (r *Repository) List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.LabSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("lab_slots")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.LabSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Reserve атомарно переводит слот available -> booked от имени userID
//
// Guard "status = available AND booked_by IS NULL" гарантирует, что из
// нескольких конкурирующих бронирований строку изменит ровно одно.
// Проигравший запрос получает ErrSlotConflict - это пост-фактум проверка
// результата записи, а не предварительная проверка статуса.
func (r *Repository) Reserve(ctx context.Context, slotID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lab_slots").
		Set("status", domain.SlotBooked).
		Set("booked_by", userID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":        slotID,
			"status":    domain.SlotAvailable,
			"booked_by": nil,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotConflict
	}

	return nil
}

// Release переводит слот booked -> available, очищая booked_by
// Используется при отмене бронирования - слот снова доступен для записи
func (r *Repository) Release(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lab_slots").
		Set("status", domain.SlotAvailable).
		Set("booked_by", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     slotID,
			"status": domain.SlotBooked,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotBooked
	}

	return nil
}

// Close переводит слот available -> closed
// Занятый слот закрыть нельзя - сначала должно быть отменено бронирование
func (r *Repository) Close(ctx context.Context, slotID int64) error {
	return r.transition(ctx, "Close", slotID, domain.SlotAvailable, domain.SlotClosed)
}

// Reopen переводит слот closed -> available
func (r *Repository) Reopen(ctx context.Context, slotID int64) error {
	return r.transition(ctx, "Reopen", slotID, domain.SlotClosed, domain.SlotAvailable)
}

// transition выполняет guarded-переход статуса одним условным UPDATE
func (r *Repository) transition(ctx context.Context, method string, slotID int64, from, to domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lab_slots").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     slotID,
			"status": from,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrInvalidTransition
	}

	return nil
}

// UpdateRemarks обновляет примечание к слоту
func (r *Repository) UpdateRemarks(ctx context.Context, slotID int64, remarks *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lab_slots").
		Set("remarks", remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRemarks - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRemarks - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRemarks - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete физически удаляет слот
// Guard по статусу запрещает удаление занятого слота
func (r *Repository) Delete(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("lab_slots").
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.NotEq{"status": domain.SlotBooked}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну строку слота
func scanSlot(row rowScanner) (*domain.LabSlot, error) {
	var slot domain.LabSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.BookedBy,
		&slot.Remarks,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
