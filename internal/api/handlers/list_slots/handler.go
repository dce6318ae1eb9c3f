package list_slots

import (
	"errors"
	"net/http"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
	"github.com/chemlab-portal/booking-service/internal/service/slots"
	"github.com/chemlab-portal/booking-service/internal/service/slots/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
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

// Handle GET /api/v1/slots?startDate=2025-10-01&endDate=2025-10-31&status=available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListSlotsRequest{}

	query := r.URL.Query()
	if startDate := query.Get("startDate"); startDate != "" {
		req.StartDate = &startDate
	}
	if endDate := query.Get("endDate"); endDate != "" {
		req.EndDate = &endDate
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /slots - Failed to list slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
