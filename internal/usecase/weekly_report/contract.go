package weekly_report

import (
	"context"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей (проверка роли)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LabUser, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
