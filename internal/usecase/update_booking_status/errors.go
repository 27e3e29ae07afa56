package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса,
	// включая переход в текущий статус
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrPermissionDenied возвращается, когда у пользователя нет прав на переход
	ErrPermissionDenied = errors.New("update_booking_status: permission denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
