package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// CancelledBy указывает, кто отменил бронирование
type CancelledBy string

const (
	CancelledBySelf  CancelledBy = "self"
	CancelledByAdmin CancelledBy = "admin"
)

// Booking represents a student's reservation record against a lab slot
//
// Инварианты (поддерживаются проверками в usecase и partial unique index в БД):
// - не более одного booked-бронирования на пару (user, slot)
// - не более одного booked-бронирования на пару (user, календарный день)
type Booking struct {
	ID        int64
	Reference string // публичный UUID бронирования
	UserID    int64
	SlotID    int64
	SlotDate  time.Time // денормализованная дата слота (для uniqueness по дню и истории)
	Status    BookingStatus

	// Данные о сдаче образцов после сессии. Записываются ровно один раз.
	SamplesCount *int
	CheckinTime  *time.Time

	CancelledBy        *CancelledBy
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == BookingBooked
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingCancelled
}

// HasSamples returns true if the sample count has already been submitted
func (b *Booking) HasSamples() bool {
	return b.SamplesCount != nil
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingBooked
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID          *int64         // Фильтр по студенту (опционально)
	SlotID          *int64         // Фильтр по слоту (опционально)
	StartDate       *time.Time     // Начало периода по дате слота (опционально)
	EndDate         *time.Time     // Конец периода по дате слота (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show записи
}
