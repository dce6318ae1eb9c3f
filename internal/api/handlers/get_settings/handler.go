package get_settings

import (
	"errors"
	"net/http"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
	"github.com/chemlab-portal/booking-service/internal/api/middleware"
	"github.com/chemlab-portal/booking-service/internal/service/settings"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgForbidden    = "доступ запрещен"
	msgNotFound     = "настройки окна бронирования еще не сохранялись"
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

// Handle GET /api/v1/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.Get(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("GET /admin/settings - Access denied: user_id=%d", user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settings.ErrSettingsNotFound):
			h.logger.Warn("GET /admin/settings - Settings not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/settings - Failed to get settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
