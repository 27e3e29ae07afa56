package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64            // ID бронирования
	UserID    int64            // ID пользователя (владелец или менеджер)
	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое время начала
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID              int64     // ID бронирования
	StaffID         int64     // Сотрудник (не меняется при переносе)
	StartTime       time.Time // Новое начало слота
	EndTime         time.Time // Новый конец слота
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус (не меняется)
	UpdatedAt       time.Time // Время обновления
}
