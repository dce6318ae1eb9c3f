package domain

import "strings"

// Business validation constants
const (
	// MinCancelNoticeHours минимальный срок самостоятельной отмены:
	// студент может отменить бронирование не позднее чем за сутки до даты слота
	MinCancelNoticeHours = 24

	MaxRemarksLength            = 500
	MaxCancellationReasonLength = 500
	MaxSamplesCount             = 10000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// WeekdayNames имена дней недели, допустимые в настройках окна бронирования
var WeekdayNames = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// IsValidWeekday проверяет, что name - корректное имя дня недели
func IsValidWeekday(name string) bool {
	for _, day := range WeekdayNames {
		if day == name {
			return true
		}
	}
	return false
}

// NormalizeWeekday приводит имя дня недели к каноническому нижнему регистру
func NormalizeWeekday(name string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if !IsValidWeekday(normalized) {
		return "", false
	}
	return normalized, true
}

// InactiveBookingStatuses статусы бронирований, не удерживающих слот
// Используются при фильтрации активных записей
var InactiveBookingStatuses = []BookingStatus{
	BookingCancelled,
	BookingNoShow,
}
