package create_slot

import (
	"github.com/chemlab-portal/booking-service/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	Date      string  `json:"date"` // "2025-10-15"
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Remarks   *string `json:"remarks,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest(actorID int64) *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		ActorID:   actorID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Remarks:   r.Remarks,
	}
}
