package booking_window

import (
	"net/http"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-window
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.CurrentWindow(r.Context())
	if err != nil {
		h.logger.Error("GET /booking-window - Failed to evaluate window: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
