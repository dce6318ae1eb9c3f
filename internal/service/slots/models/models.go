package models

import (
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
	"github.com/chemlab-portal/booking-service/pkg/types"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	ActorID   int64   `json:"actorId"` // администратор, создающий слот
	Date      string  `json:"date"`    // "2025-10-15"
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Remarks   *string `json:"remarks,omitempty"`
}

// UpdateRemarksRequest запрос на изменение пометок слота
type UpdateRemarksRequest struct {
	ActorID int64   `json:"actorId"`
	Remarks *string `json:"remarks"` // nil очищает пометки
}

// ListSlotsRequest фильтр публичного списка слотов
type ListSlotsRequest struct {
	StartDate *string `json:"startDate,omitempty"` // "2025-10-15"
	EndDate   *string `json:"endDate,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"` // "2025-10-15"
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Status    string  `json:"status"`
	BookedBy  *int64  `json:"bookedBy,omitempty"`
	Remarks   *string `json:"remarks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.LabSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Status:    string(s.Status),
		BookedBy:  s.BookedBy,
		Remarks:   s.Remarks,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.LabSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// ToDomainSlot собирает domain модель из запроса на создание
// Валидация полей выполняется в сервисе до вызова
func ToDomainSlot(date time.Time, startTime, endTime types.TimeString, remarks *string) *domain.LabSlot {
	return &domain.LabSlot{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    domain.SlotAvailable,
		Remarks:   remarks,
	}
}
