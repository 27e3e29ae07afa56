package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrPermissionDenied возвращается, когда у пользователя нет прав на просмотр
	ErrPermissionDenied = errors.New("bookings.service: permission denied")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
