package update_booking_status

import "time"

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID int64   // ID бронирования
	UserID    int64   // ID пользователя, выполняющего переход
	Status    string  // Целевой статус
	Reason    *string // Причина отмены (только для cancelled)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID          int64      // ID бронирования
	Status      string     // Новый статус
	CancelledAt *time.Time // Время отмены (для cancelled)
	UpdatedAt   time.Time  // Время обновления
}
