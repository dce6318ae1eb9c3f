package submit_samples

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("submit_samples: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому студенту
	ErrAccessDenied = errors.New("submit_samples: booking belongs to another user")

	// ErrBookingNotActive возвращается, когда бронирование отменено или no-show
	ErrBookingNotActive = errors.New("submit_samples: booking is not active")

	// ErrTooEarly возвращается при попытке сдать образцы до окончания сессии
	ErrTooEarly = errors.New("submit_samples: lab session has not ended yet")

	// ErrAlreadySubmitted возвращается при повторной сдаче образцов.
	// Запись одноразовая, пути исправления количества не предусмотрено
	ErrAlreadySubmitted = errors.New("submit_samples: samples already submitted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_samples: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_samples: internal error")
)
