package models

import (
	"errors"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID int64  `json:"actorId"` // кто отменяет (владелец или администратор)
	Reason  string `json:"reason"`
}

// GetUserBookingsRequest запрос истории бронирований студента
type GetUserBookingsRequest struct {
	UserID      int64   `json:"userId"`      // чья история запрашивается
	RequestedBy int64   `json:"requestedBy"` // кто запрашивает
	Status      *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	UserID    int64  `json:"userId"`
	SlotID    int64  `json:"slotId"`
	SlotDate  string `json:"slotDate"` // "2025-10-15"
	Status    string `json:"status"`

	SamplesCount *int    `json:"samplesCount,omitempty"`
	CheckinTime  *string `json:"checkinTime,omitempty"` // ISO 8601

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		Reference:    b.Reference,
		UserID:       b.UserID,
		SlotID:       b.SlotID,
		SlotDate:     b.SlotDate.Format(domain.DateFormat),
		Status:       string(b.Status),
		SamplesCount: b.SamplesCount,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.CheckinTime != nil {
		checkinStr := b.CheckinTime.Format(time.RFC3339)
		resp.CheckinTime = &checkinStr
	}

	if b.CancelledBy != nil {
		cancelledByStr := string(*b.CancelledBy)
		resp.CancelledBy = &cancelledByStr
	}
	resp.CancellationReason = b.CancellationReason

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.BookingBooked,
		domain.BookingCancelled,
		domain.BookingNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
