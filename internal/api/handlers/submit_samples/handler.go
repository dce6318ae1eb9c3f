package submit_samples

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
	"github.com/chemlab-portal/booking-service/internal/api/middleware"
	samples "github.com/chemlab-portal/booking-service/internal/usecase/submit_samples"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotActive          = "бронирование отменено или отмечено как неявка"
	msgTooEarly           = "сдача образцов доступна после окончания сессии"
	msgAlreadySubmitted   = "количество образцов уже записано"
)

type Handler struct {
	useCase SubmitSamplesUseCase
	logger  Logger
}

func NewHandler(useCase SubmitSamplesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/samples
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/samples - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var req SubmitSamplesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/samples - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Записываем количество образцов
	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(user.ID, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, samples.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/samples - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, samples.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/samples - Access denied: booking_id=%d, user_id=%d",
				bookingID, user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, samples.ErrBookingNotActive):
			h.logger.Warn("POST /bookings/{id}/samples - Booking not active: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotActive)

		case errors.Is(err, samples.ErrTooEarly):
			h.logger.Warn("POST /bookings/{id}/samples - Session not ended: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooEarly)

		case errors.Is(err, samples.ErrAlreadySubmitted):
			h.logger.Warn("POST /bookings/{id}/samples - Already submitted: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadySubmitted)

		case errors.Is(err, samples.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/samples - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/samples - Failed to submit samples: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/samples - Samples submitted: booking_id=%d, count=%d",
		bookingID, resp.SamplesCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
