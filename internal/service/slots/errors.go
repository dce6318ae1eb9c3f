package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrSlotBooked возвращается при попытке удалить занятый слот
	ErrSlotBooked = errors.New("slot is booked and cannot be deleted")

	// ErrInvalidTransition возвращается, когда перевод статуса (close/reopen)
	// неприменим к текущему состоянию слота
	ErrInvalidTransition = errors.New("invalid slot status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)
