// Package policy решает, открыто ли бронирование в данный момент.
//
// Evaluator - чистая функция от (now, settings): не читает часы и хранилище,
// все входные данные передаются явно.
package policy

import (
	"strings"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
)

// Window тип действующего окна бронирования
type Window string

const (
	WindowNone      Window = "none"
	WindowRegular   Window = "regular"
	WindowEmergency Window = "emergency"
)

// Сообщения по умолчанию, когда в настройках не задано своё
const (
	defaultNotConfiguredMessage = "Booking is not configured yet. Please contact the lab administrator."
	defaultClosedMessage        = "Booking is currently closed."
)

// Decision результат проверки окна бронирования
type Decision struct {
	Allowed bool
	Window  Window
	Message string // сообщение для студентов; пустое, когда бронирование открыто штатно
}

// Evaluate принимает решение о доступности бронирования в момент now.
//
// Приоритет: экстренное окно перекрывает регулярное расписание. Экстренное
// окно действует только если открыто администратором, обе границы заданы,
// now попадает в границы и день недели разрешён. Отсутствующие границы при
// открытом флаге трактуются как "окно не открыто", а не "окно без границ".
func Evaluate(now time.Time, settings *domain.BookingWindowSettings) Decision {
	if settings == nil {
		return Decision{
			Allowed: false,
			Window:  WindowNone,
			Message: defaultNotConfiguredMessage,
		}
	}

	currentDay := weekdayName(now)

	if emergencyWindowActive(now, currentDay, settings) {
		return Decision{
			Allowed: true,
			Window:  WindowEmergency,
			Message: settings.EmergencyMessage,
		}
	}

	if settings.IsRegularBookingEnabled && containsDay(settings.RegularAllowedDays, currentDay) {
		return Decision{
			Allowed: true,
			Window:  WindowRegular,
		}
	}

	message := settings.Message
	if message == "" {
		message = defaultClosedMessage
	}

	return Decision{
		Allowed: false,
		Window:  WindowNone,
		Message: message,
	}
}

// IsBookingAllowed возвращает true, если бронирование разрешено в момент now
func IsBookingAllowed(now time.Time, settings *domain.BookingWindowSettings) bool {
	return Evaluate(now, settings).Allowed
}

// Message возвращает сообщение для студентов в момент now
func Message(now time.Time, settings *domain.BookingWindowSettings) string {
	return Evaluate(now, settings).Message
}

// emergencyWindowActive проверяет все условия экстренного окна
func emergencyWindowActive(now time.Time, currentDay string, settings *domain.BookingWindowSettings) bool {
	if !settings.IsEmergencyBookingOpen {
		return false
	}
	if !settings.HasEmergencyBounds() {
		return false
	}
	if now.Before(*settings.EmergencyBookingStart) || now.After(*settings.EmergencyBookingEnd) {
		return false
	}
	return containsDay(settings.EmergencyAllowedDays, currentDay)
}

// weekdayName возвращает имя дня недели в нижнем регистре ("monday", ...)
func weekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// containsDay проверяет вхождение дня в список (без учета регистра)
func containsDay(days []string, day string) bool {
	for _, d := range days {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}
