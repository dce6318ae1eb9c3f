package submit_samples

import (
	"context"

	samples "github.com/chemlab-portal/booking-service/internal/usecase/submit_samples"
)

type SubmitSamplesUseCase interface {
	Execute(ctx context.Context, req *samples.Request) (*samples.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
