package reserve_booking

import (
	"time"

	"github.com/chemlab-portal/booking-service/internal/usecase/reserve_slot"
)

// ReserveBookingRequest HTTP request model
type ReserveBookingRequest struct {
	SlotID int64 `json:"slotId"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *ReserveBookingRequest) ToUseCaseRequest(userID int64) *reserve_slot.Request {
	return &reserve_slot.Request{
		UserID: userID,
		SlotID: r.SlotID,
	}
}

// ReserveBookingResponse HTTP response model
type ReserveBookingResponse struct {
	BookingID int64     `json:"bookingId"`
	Reference string    `json:"reference"`
	UserID    int64     `json:"userId"`
	SlotID    int64     `json:"slotId"`
	SlotDate  string    `json:"slotDate"` // "2025-10-15"
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	Window    string    `json:"window"` // какое окно действовало (regular/emergency)
	CreatedAt time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserve_slot.Response) *ReserveBookingResponse {
	return &ReserveBookingResponse{
		BookingID: resp.BookingID,
		Reference: resp.Reference,
		UserID:    resp.UserID,
		SlotID:    resp.SlotID,
		SlotDate:  resp.SlotDate.Format("2006-01-02"),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Status:    resp.Status,
		Window:    resp.Window,
		CreatedAt: resp.CreatedAt,
	}
}
