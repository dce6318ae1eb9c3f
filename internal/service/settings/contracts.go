package settings

import (
	"context"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек окна бронирования
type SettingsRepository interface {
	GetLatest(ctx context.Context) (*domain.BookingWindowSettings, error)
	Save(ctx context.Context, s *domain.BookingWindowSettings) (*domain.BookingWindowSettings, error)
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
