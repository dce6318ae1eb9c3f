package get_settings

import (
	"context"

	"github.com/chemlab-portal/booking-service/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, actorID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
