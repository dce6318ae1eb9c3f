package reserve_booking

import (
	"errors"
	"net/http"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
	"github.com/chemlab-portal/booking-service/internal/api/middleware"
	"github.com/chemlab-portal/booking-service/internal/usecase/reserve_slot"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgWindowClosed       = "бронирование сейчас закрыто"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот недоступен для бронирования"
	msgPastSlot           = "дата слота уже прошла"
	msgDuplicateBooking   = "у вас уже есть запись на этот слот"
	msgDuplicateDate      = "у вас уже есть запись на эту дату"
	msgSlotConflict       = "слот только что заняли, выберите другой"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req ReserveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Бронируем слот
	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(user.ID))
	if err != nil {
		switch {
		case errors.Is(err, reserve_slot.ErrBookingWindowClosed):
			h.logger.Warn("POST /bookings - Booking window closed: user_id=%d", user.ID)
			handlers.RespondForbidden(w, msgWindowClosed)

		case errors.Is(err, reserve_slot.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserve_slot.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, reserve_slot.ErrPastSlot):
			h.logger.Warn("POST /bookings - Past slot: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgPastSlot)

		case errors.Is(err, reserve_slot.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, slot_id=%d", user.ID, req.SlotID)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, reserve_slot.ErrDuplicateDateBooking):
			h.logger.Warn("POST /bookings - Duplicate date booking: user_id=%d, slot_id=%d", user.ID, req.SlotID)
			handlers.RespondConflict(w, msgDuplicateDate)

		case errors.Is(err, reserve_slot.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot taken concurrently: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, reserve_slot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: user_id=%d, slot_id=%d, error=%v",
				user.ID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, slot_id=%d",
		resp.BookingID, user.ID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
