package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/chemlab-portal/booking-service/internal/domain"
	"github.com/chemlab-portal/booking-service/pkg/dbmetrics"
	"github.com/chemlab-portal/booking-service/pkg/psqlbuilder"
)

var userColumns = []string{
	"id",
	"email",
	"name",
	"role",
	"created_at",
}

// Repository репозиторий пользователей портала
//
// Провайдер аутентификации отдаёт только идентичность (id + email);
// роль (student/admin) - атрибут хранилища и читается отсюда.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LabUser, error) {
	return r.getBy(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает пользователя по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.LabUser, error) {
	return r.getBy(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

func (r *Repository) getBy(ctx context.Context, method string, where squirrel.Eq) (*domain.LabUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("lab_users").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var u domain.LabUser
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, method, err)
	}

	u.CreatedAt = createdAt.Time

	return &u, nil
}

// List получает всех пользователей (для административных экранов)
func (r *Repository) List(ctx context.Context) ([]*domain.LabUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("lab_users").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.LabUser, 0)
	for rows.Next() {
		var u domain.LabUser
		var createdAt sql.NullTime

		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		u.CreatedAt = createdAt.Time
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}
