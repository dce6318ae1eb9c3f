package booking_window

import (
	"context"

	"github.com/chemlab-portal/booking-service/internal/service/settings/models"
)

type SettingsService interface {
	CurrentWindow(ctx context.Context) (*models.BookingWindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
