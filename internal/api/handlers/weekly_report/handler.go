package weekly_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/chemlab-portal/booking-service/internal/api/handlers"
	"github.com/chemlab-portal/booking-service/internal/api/middleware"
	"github.com/chemlab-portal/booking-service/internal/domain"
	report "github.com/chemlab-portal/booking-service/internal/usecase/weekly_report"
)

const (
	msgUnauthorized  = "требуется аутентификация"
	msgInvalidPeriod = "некорректный период отчета"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	useCase WeeklyReportUseCase
	logger  Logger
}

func NewHandler(useCase WeeklyReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports/weekly?from=2025-10-01&to=2025-10-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/reports/weekly - Invalid 'from': %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/reports/weekly - Invalid 'to': %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &report.Request{
		RequestedBy: user.ID,
		From:        from,
		To:          to,
	})
	if err != nil {
		switch {
		case errors.Is(err, report.ErrAccessDenied):
			h.logger.Warn("GET /admin/reports/weekly - Access denied: user_id=%d", user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, report.ErrInvalidPeriod), errors.Is(err, report.ErrInvalidInput):
			h.logger.Warn("GET /admin/reports/weekly - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/reports/weekly - Failed to build report: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
