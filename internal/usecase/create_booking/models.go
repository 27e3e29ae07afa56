package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID   int64            // ID клиента (из заголовка авторизации)
	BusinessID int64            // ID бизнеса
	BranchID   int64            // ID филиала
	ServiceID  int64            // ID услуги
	StaffID    *int64           // ID сотрудника; nil = любой свободный
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64  // ID созданного бронирования
	ClientID   int64  // ID клиента
	BusinessID int64  // ID бизнеса
	BranchID   int64  // ID филиала
	ServiceID  int64  // ID услуги
	StaffID    int64  // ID сотрудника (разрешенный, всегда конкретный)
	Status     string // Статус бронирования (pending)

	StartTime       time.Time // Начало слота
	EndTime         time.Time // Конец слота (start + длительность услуги)
	DurationMinutes int       // Длительность в минутах

	// Денормализованные данные
	ServiceName string  // Название услуги
	Notes       *string // Пожелания клиента

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
