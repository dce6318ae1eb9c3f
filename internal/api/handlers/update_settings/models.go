package update_settings

import (
	"github.com/chemlab-portal/booking-service/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	IsRegularBookingEnabled bool     `json:"isRegularBookingEnabled"`
	RegularAllowedDays      []string `json:"regularAllowedDays"`
	Message                 string   `json:"message"`

	IsEmergencyBookingOpen bool     `json:"isEmergencyBookingOpen"`
	EmergencyBookingStart  *string  `json:"emergencyBookingStart,omitempty"` // ISO 8601
	EmergencyBookingEnd    *string  `json:"emergencyBookingEnd,omitempty"`   // ISO 8601
	EmergencyAllowedDays   []string `json:"emergencyAllowedDays"`
	EmergencyMessage       string   `json:"emergencyMessage"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(actorID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		ActorID:                 actorID,
		IsRegularBookingEnabled: r.IsRegularBookingEnabled,
		RegularAllowedDays:      r.RegularAllowedDays,
		Message:                 r.Message,
		IsEmergencyBookingOpen:  r.IsEmergencyBookingOpen,
		EmergencyBookingStart:   r.EmergencyBookingStart,
		EmergencyBookingEnd:     r.EmergencyBookingEnd,
		EmergencyAllowedDays:    r.EmergencyAllowedDays,
		EmergencyMessage:        r.EmergencyMessage,
	}
}
