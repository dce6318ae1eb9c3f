package reserve_slot

import (
	"context"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LabSlot, error)
	Reserve(ctx context.Context, slotID, userID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByUserAndSlot(ctx context.Context, userID, slotID int64) (*domain.Booking, error)
	GetActiveByUserAndDate(ctx context.Context, userID int64, date time.Time) (*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек окна бронирования
type SettingsRepository interface {
	GetLatest(ctx context.Context) (*domain.BookingWindowSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
