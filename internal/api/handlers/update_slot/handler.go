package update_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
	"github.com/chemlab-portal/booking-service/internal/api/middleware"
	"github.com/chemlab-portal/booking-service/internal/service/slots"
	"github.com/chemlab-portal/booking-service/internal/service/slots/models"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAction      = "некорректное действие над слотом"
	msgEmptyUpdate        = "запрос не содержит изменений"
	msgNotFound           = "слот не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "действие неприменимо к текущему статусу слота"
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

// Handle PATCH /api/v1/admin/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsEmpty() {
		handlers.RespondBadRequest(w, msgEmptyUpdate)
		return
	}

	if req.Action != nil {
		if err := h.applyAction(w, r, slotID, user.ID, *req.Action); err != nil {
			return
		}
	}

	if req.Remarks != nil {
		remarks := req.Remarks
		if *remarks == "" {
			remarks = nil
		}

		serviceReq := &models.UpdateRemarksRequest{ActorID: user.ID, Remarks: remarks}
		if err := h.service.UpdateRemarks(r.Context(), slotID, serviceReq); err != nil {
			h.respondServiceError(w, slotID, user.ID, "update remarks", err)
			return
		}
	}

	slot, err := h.service.GetByID(r.Context(), slotID)
	if err != nil {
		h.respondServiceError(w, slotID, user.ID, "get updated slot", err)
		return
	}

	h.logger.Info("PATCH /admin/slots/{id} - Slot updated: slot_id=%d, admin_id=%d", slotID, user.ID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}

// applyAction выполняет переход статуса; при ошибке пишет ответ и возвращает её
func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request, slotID, actorID int64, action string) error {
	var err error

	switch action {
	case ActionClose:
		err = h.service.Close(r.Context(), slotID, actorID)
	case ActionReopen:
		err = h.service.Reopen(r.Context(), slotID, actorID)
	default:
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid action %q: slot_id=%d", action, slotID)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return errors.New("invalid action")
	}

	if err != nil {
		h.respondServiceError(w, slotID, actorID, action, err)
		return err
	}

	return nil
}

func (h *Handler) respondServiceError(w http.ResponseWriter, slotID, actorID int64, op string, err error) {
	switch {
	case errors.Is(err, slots.ErrSlotNotFound):
		h.logger.Warn("PATCH /admin/slots/{id} - Slot not found: slot_id=%d", slotID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, slots.ErrAccessDenied):
		h.logger.Warn("PATCH /admin/slots/{id} - Access denied: slot_id=%d, user_id=%d", slotID, actorID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, slots.ErrInvalidTransition):
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid transition: slot_id=%d, op=%s", slotID, op)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, slots.ErrInvalidInput):
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid input: slot_id=%d, error=%v", slotID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("PATCH /admin/slots/{id} - Failed to %s: slot_id=%d, error=%v", op, slotID, err)
		handlers.RespondInternalError(w)
	}
}
