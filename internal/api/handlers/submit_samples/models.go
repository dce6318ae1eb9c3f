package submit_samples

import (
	"time"

	samples "github.com/chemlab-portal/booking-service/internal/usecase/submit_samples"
)

// SubmitSamplesRequest HTTP request model
type SubmitSamplesRequest struct {
	SamplesCount int `json:"samplesCount"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *SubmitSamplesRequest) ToUseCaseRequest(userID, bookingID int64) *samples.Request {
	return &samples.Request{
		UserID:    userID,
		BookingID: bookingID,
		Count:     r.SamplesCount,
	}
}

// SubmitSamplesResponse HTTP response model
type SubmitSamplesResponse struct {
	BookingID    int64     `json:"bookingId"`
	SamplesCount int       `json:"samplesCount"`
	CheckinTime  time.Time `json:"checkinTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *samples.Response) *SubmitSamplesResponse {
	return &SubmitSamplesResponse{
		BookingID:    resp.BookingID,
		SamplesCount: resp.SamplesCount,
		CheckinTime:  resp.CheckinTime,
	}
}
