package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotConflict возвращается, когда условный переход available -> booked
	// не изменил ни одной строки: слот успел занять другой студент,
	// либо слот закрыт или удалён между проверкой и записью
	ErrSlotConflict = errors.New("slot.repository: slot reservation conflict")

	// ErrNotBooked возвращается при попытке освободить слот, который не занят
	ErrNotBooked = errors.New("slot.repository: slot is not booked")

	// ErrInvalidTransition возвращается, когда guarded-переход статуса
	// (close/reopen) не применим к текущему состоянию слота
	ErrInvalidTransition = errors.New("slot.repository: invalid status transition")

	// ErrSlotBooked возвращается при попытке удалить занятый слот
	ErrSlotBooked = errors.New("slot.repository: slot is booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
