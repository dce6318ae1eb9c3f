package domain

import "time"

// BookingWindowSettings системные настройки окна бронирования
//
// Хранятся версионированно: каждая правка администратора добавляет новую
// строку, действующей считается последняя по updated_at. Policy evaluator
// получает настройки явным аргументом и сам в хранилище не ходит.
type BookingWindowSettings struct {
	ID int64

	// Регулярное еженедельное окно
	IsRegularBookingEnabled bool
	RegularAllowedDays      []string // имена дней недели в нижнем регистре ("monday", ...)
	Message                 string   // сообщение студентам, когда бронирование закрыто

	// Экстренное окно, объявляемое администратором поверх регулярного расписания
	IsEmergencyBookingOpen bool
	EmergencyBookingStart  *time.Time
	EmergencyBookingEnd    *time.Time
	EmergencyAllowedDays   []string
	EmergencyMessage       string

	UpdatedBy int64 // ID администратора, сохранившего настройки

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmergencyBounds returns true if both emergency window bounds are set
// Экстренное окно без обеих границ считается не открытым
func (s *BookingWindowSettings) HasEmergencyBounds() bool {
	return s.EmergencyBookingStart != nil && s.EmergencyBookingEnd != nil
}
