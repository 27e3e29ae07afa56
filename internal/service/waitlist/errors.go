package waitlist

import "errors"

var (
	// ErrServiceInactive возвращается для выключенной услуги
	ErrServiceInactive = errors.New("waitlist.service: service is inactive")

	// ErrClientInactive возвращается для неактивного клиента
	ErrClientInactive = errors.New("waitlist.service: client is inactive")

	// ErrPermissionDenied возвращается, когда у пользователя нет прав на операцию
	ErrPermissionDenied = errors.New("waitlist.service: permission denied")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("waitlist.service: internal error")
)
