package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки ещё не сохранялись
	ErrSettingsNotFound = errors.New("booking window settings not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings service: internal error")
)
