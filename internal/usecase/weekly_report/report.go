package weekly_report

import (
	"sort"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

// WeekStats статистика посещаемости за одну ISO-неделю
type WeekStats struct {
	Year int // ISO год
	Week int // ISO номер недели

	TotalBookings    int // Все бронирования недели
	Attended         int // Активные бронирования со сданными образцами
	Pending          int // Активные бронирования без сданных образцов
	CancelledBySelf  int
	CancelledByAdmin int
	NoShows          int

	TotalSamples int // Сумма сданных образцов
}

// aggregateByWeek группирует бронирования по ISO-неделям даты слота
// Результат отсортирован по (год, неделя) по возрастанию
func aggregateByWeek(bookings []*domain.Booking) []WeekStats {
	type weekKey struct {
		year int
		week int
	}

	byWeek := make(map[weekKey]*WeekStats)

	for _, b := range bookings {
		year, week := b.SlotDate.ISOWeek()
		key := weekKey{year: year, week: week}

		stats, ok := byWeek[key]
		if !ok {
			stats = &WeekStats{Year: year, Week: week}
			byWeek[key] = stats
		}

		stats.TotalBookings++

		switch b.Status {
		case domain.BookingBooked:
			if b.HasSamples() {
				stats.Attended++
				stats.TotalSamples += *b.SamplesCount
			} else {
				stats.Pending++
			}
		case domain.BookingCancelled:
			if b.CancelledBy != nil && *b.CancelledBy == domain.CancelledByAdmin {
				stats.CancelledByAdmin++
			} else {
				stats.CancelledBySelf++
			}
		case domain.BookingNoShow:
			stats.NoShows++
		}
	}

	weeks := make([]WeekStats, 0, len(byWeek))
	for _, stats := range byWeek {
		weeks = append(weeks, *stats)
	}

	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year != weeks[j].Year {
			return weeks[i].Year < weeks[j].Year
		}
		return weeks[i].Week < weeks[j].Week
	})

	return weeks
}
