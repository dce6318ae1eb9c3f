package reserve_slot

import "errors"

var (
	// ErrBookingWindowClosed возвращается, когда окно бронирования закрыто
	// (ни регулярное, ни экстренное окно не действует в момент запроса)
	ErrBookingWindowClosed = errors.New("reserve_slot: booking window is closed")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrSlotUnavailable возвращается, когда слот занят или закрыт
	// (обнаружено проверкой до попытки записи)
	ErrSlotUnavailable = errors.New("reserve_slot: slot is not available")

	// ErrPastSlot возвращается при попытке забронировать слот на прошедшую дату
	ErrPastSlot = errors.New("reserve_slot: slot date is in the past")

	// ErrDuplicateBooking возвращается, когда у студента уже есть активное
	// бронирование именно этого слота
	ErrDuplicateBooking = errors.New("reserve_slot: duplicate booking for this slot")

	// ErrDuplicateDateBooking возвращается, когда у студента уже есть активное
	// бронирование другого слота на тот же календарный день
	ErrDuplicateDateBooking = errors.New("reserve_slot: user already has a booking on this date")

	// ErrSlotConflict возвращается, когда атомарный переход available -> booked
	// не прошёл: слот успел занять другой студент между проверкой и записью.
	// Повторять запрос автоматически нельзя - победил первый зафиксировавшийся
	ErrSlotConflict = errors.New("reserve_slot: slot was taken by a concurrent booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
