package weekly_report

import (
	"context"

	report "github.com/chemlab-portal/booking-service/internal/usecase/weekly_report"
)

type WeeklyReportUseCase interface {
	Execute(ctx context.Context, req *report.Request) (*report.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
