package models

import (
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на изменение настроек окна бронирования
type UpdateSettingsRequest struct {
	ActorID int64 `json:"actorId"` // администратор, сохраняющий настройки

	IsRegularBookingEnabled bool     `json:"isRegularBookingEnabled"`
	RegularAllowedDays      []string `json:"regularAllowedDays"`
	Message                 string   `json:"message"`

	IsEmergencyBookingOpen bool     `json:"isEmergencyBookingOpen"`
	EmergencyBookingStart  *string  `json:"emergencyBookingStart,omitempty"` // ISO 8601
	EmergencyBookingEnd    *string  `json:"emergencyBookingEnd,omitempty"`   // ISO 8601
	EmergencyAllowedDays   []string `json:"emergencyAllowedDays"`
	EmergencyMessage       string   `json:"emergencyMessage"`
}

// Response модели

// SettingsResponse ответ с текущими настройками окна бронирования
type SettingsResponse struct {
	IsRegularBookingEnabled bool     `json:"isRegularBookingEnabled"`
	RegularAllowedDays      []string `json:"regularAllowedDays"`
	Message                 string   `json:"message"`

	IsEmergencyBookingOpen bool     `json:"isEmergencyBookingOpen"`
	EmergencyBookingStart  *string  `json:"emergencyBookingStart,omitempty"` // ISO 8601
	EmergencyBookingEnd    *string  `json:"emergencyBookingEnd,omitempty"`   // ISO 8601
	EmergencyAllowedDays   []string `json:"emergencyAllowedDays"`
	EmergencyMessage       string   `json:"emergencyMessage"`

	UpdatedBy int64     `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingWindowResponse публичный ответ о состоянии окна бронирования
type BookingWindowResponse struct {
	Allowed bool   `json:"allowed"`
	Window  string `json:"window"`            // none / regular / emergency
	Message string `json:"message,omitempty"` // почему бронирование закрыто
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingWindowSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		IsRegularBookingEnabled: s.IsRegularBookingEnabled,
		RegularAllowedDays:      s.RegularAllowedDays,
		Message:                 s.Message,
		IsEmergencyBookingOpen:  s.IsEmergencyBookingOpen,
		EmergencyAllowedDays:    s.EmergencyAllowedDays,
		EmergencyMessage:        s.EmergencyMessage,
		UpdatedBy:               s.UpdatedBy,
		UpdatedAt:               s.UpdatedAt,
	}

	if s.EmergencyBookingStart != nil {
		startStr := s.EmergencyBookingStart.Format(time.RFC3339)
		resp.EmergencyBookingStart = &startStr
	}

	if s.EmergencyBookingEnd != nil {
		endStr := s.EmergencyBookingEnd.Format(time.RFC3339)
		resp.EmergencyBookingEnd = &endStr
	}

	return resp
}
