package domain

import "time"

// UserRole роль пользователя портала
// Роль хранится в БД, а не в токене: провайдер аутентификации отдаёт только
// идентичность (id + email)
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// LabUser пользователь портала (студент или администратор лаборатории)
type LabUser struct {
	ID        int64
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
}

// IsAdmin returns true if the user has the admin role
func (u *LabUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
