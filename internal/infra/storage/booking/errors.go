package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateActiveBooking возвращается при нарушении уникальности
	// активного бронирования (partial unique index по (user, slot) или (user, дата))
	ErrDuplicateActiveBooking = errors.New("booking.repository: duplicate active booking")

	// ErrCannotCancel возвращается, когда условная отмена не изменила строку:
	// бронирование уже отменено, отмечено как no-show или не существует
	ErrCannotCancel = errors.New("booking.repository: booking cannot be cancelled")

	// ErrSamplesAlreadySubmitted возвращается, когда условная запись образцов
	// не изменила строку: количество уже записано или бронирование не активно
	ErrSamplesAlreadySubmitted = errors.New("booking.repository: samples already submitted")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
