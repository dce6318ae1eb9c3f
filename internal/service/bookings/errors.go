package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование уже отменено или no-show
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationTooLate возвращается, когда студент отменяет бронирование
	// менее чем за сутки до даты слота. Администратора это правило не касается
	ErrCancellationTooLate = errors.New("too late to cancel this booking")

	// ErrCannotMarkNoShow возвращается, когда отметка no-show неприменима
	ErrCannotMarkNoShow = errors.New("booking cannot be marked as no-show")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
