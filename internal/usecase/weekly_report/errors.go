package weekly_report

import "errors"

var (
	// ErrAccessDenied возвращается, когда отчет запрашивает не администратор
	ErrAccessDenied = errors.New("weekly_report: access denied")

	// ErrInvalidPeriod возвращается при некорректном периоде отчета
	ErrInvalidPeriod = errors.New("weekly_report: invalid report period")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("weekly_report: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("weekly_report: internal error")
)
