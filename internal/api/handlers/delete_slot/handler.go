package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
	"github.com/chemlab-portal/booking-service/internal/api/middleware"
	"github.com/chemlab-portal/booking-service/internal/service/slots"
)

const (
	msgUnauthorized  = "требуется аутентификация"
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "слот не найден"
	msgForbidden     = "доступ запрещен"
	msgSlotBooked    = "занятый слот удалить нельзя"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	err = h.service.Delete(r.Context(), slotID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /admin/slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/slots/{id} - Access denied: slot_id=%d, user_id=%d", slotID, user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrSlotBooked):
			h.logger.Warn("DELETE /admin/slots/{id} - Slot is booked: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotBooked)

		default:
			h.logger.Error("DELETE /admin/slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/slots/{id} - Slot deleted: slot_id=%d, admin_id=%d", slotID, user.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
