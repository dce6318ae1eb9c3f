package slots

import (
	"context"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.LabSlot) (*domain.LabSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.LabSlot, error)
	List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.LabSlot, error)
	Close(ctx context.Context, slotID int64) error
	Reopen(ctx context.Context, slotID int64) error
	UpdateRemarks(ctx context.Context, slotID int64, remarks *string) error
	Delete(ctx context.Context, slotID int64) error
}

// UserRepository интерфейс репозитория пользователей (проверка роли)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LabUser, error)
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
