package domain

import (
	"time"

	"github.com/chemlab-portal/booking-service/pkg/types"
)

// SlotStatus represents the status of a lab slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotClosed    SlotStatus = "closed"
)

// LabSlot represents a bookable lab time window on a specific date
//
// Инвариант: BookedBy != nil тогда и только тогда, когда Status == booked.
// Поддерживается условными UPDATE в репозитории и CHECK-констрейнтом в БД.
type LabSlot struct {
	ID        int64
	Date      time.Time // календарный день слота (время обнулено)
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	BookedBy  *int64 // ID студента, занявшего слот
	Remarks   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the slot can be reserved
func (s *LabSlot) IsAvailable() bool {
	return s.Status == SlotAvailable && s.BookedBy == nil
}

// IsBooked returns true if the slot is held by a student
func (s *LabSlot) IsBooked() bool {
	return s.Status == SlotBooked
}

// IsClosed returns true if the slot was closed by an admin
func (s *LabSlot) IsClosed() bool {
	return s.Status == SlotClosed
}

// CanBeDeleted returns true if the slot may be physically removed
// Занятый слот удалять нельзя - сначала бронирование должно быть отменено
func (s *LabSlot) CanBeDeleted() bool {
	return s.Status != SlotBooked
}

// IsPastDate returns true if the slot's calendar day is strictly before now's day
func (s *LabSlot) IsPastDate(now time.Time) bool {
	slotDay := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return slotDay.Before(nowDay)
}

// EndsAt returns the absolute end time of the session (slot date + end time)
func (s *LabSlot) EndsAt() (time.Time, error) {
	return s.EndTime.OnDate(s.Date)
}

// SlotsFilter фильтр для выборки слотов
type SlotsFilter struct {
	StartDate *time.Time  // Начало периода (опционально)
	EndDate   *time.Time  // Конец периода (опционально)
	Status    *SlotStatus // Фильтр по статусу (опционально)
}
