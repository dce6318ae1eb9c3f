package weekly_report

import (
	"github.com/chemlab-portal/booking-service/internal/domain"
	report "github.com/chemlab-portal/booking-service/internal/usecase/weekly_report"
)

// WeekStatsResponse статистика одной ISO-недели
type WeekStatsResponse struct {
	Year int `json:"year"`
	Week int `json:"week"`

	TotalBookings    int `json:"totalBookings"`
	Attended         int `json:"attended"`
	Pending          int `json:"pending"`
	CancelledBySelf  int `json:"cancelledBySelf"`
	CancelledByAdmin int `json:"cancelledByAdmin"`
	NoShows          int `json:"noShows"`

	TotalSamples int `json:"totalSamples"`
}

// WeeklyReportResponse HTTP response model
type WeeklyReportResponse struct {
	From  string              `json:"from"` // "2025-10-01"
	To    string              `json:"to"`
	Weeks []WeekStatsResponse `json:"weeks"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *report.Response) *WeeklyReportResponse {
	weeks := make([]WeekStatsResponse, 0, len(resp.Weeks))
	for _, w := range resp.Weeks {
		weeks = append(weeks, WeekStatsResponse{
			Year:             w.Year,
			Week:             w.Week,
			TotalBookings:    w.TotalBookings,
			Attended:         w.Attended,
			Pending:          w.Pending,
			CancelledBySelf:  w.CancelledBySelf,
			CancelledByAdmin: w.CancelledByAdmin,
			NoShows:          w.NoShows,
			TotalSamples:     w.TotalSamples,
		})
	}

	return &WeeklyReportResponse{
		From:  resp.From.Format(domain.DateFormat),
		To:    resp.To.Format(domain.DateFormat),
		Weeks: weeks,
	}
}
