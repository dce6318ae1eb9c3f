package update_slot

import (
	"context"

	"github.com/chemlab-portal/booking-service/internal/service/slots/models"
)

type SlotService interface {
	Close(ctx context.Context, slotID int64, actorID int64) error
	Reopen(ctx context.Context, slotID int64, actorID int64) error
	UpdateRemarks(ctx context.Context, slotID int64, req *models.UpdateRemarksRequest) error
	GetByID(ctx context.Context, id int64) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
