package schedconfig

import "errors"

var (
	// ErrInvalidConfig возвращается, когда параметры выходят за допустимые границы
	ErrInvalidConfig = errors.New("schedconfig.service: invalid config values")

	// ErrPermissionDenied возвращается, когда у пользователя нет прав на операцию
	ErrPermissionDenied = errors.New("schedconfig.service: permission denied")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("schedconfig.service: internal error")
)
