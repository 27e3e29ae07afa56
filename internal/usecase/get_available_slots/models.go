package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса сетки свободных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	BranchID   int64     // ID филиала
	ServiceID  int64     // ID услуги
	StaffID    *int64    // ID сотрудника; nil = все квалифицированные
	Date       time.Time // Дата (без времени)
}

// Slot свободный слот в ответе
type Slot struct {
	StartTime       types.TimeString // Время начала ("10:00")
	DurationMinutes int              // Длительность в минутах
	StaffID         int64            // Сотрудник, у которого слот свободен
}

// Response модель ответа с сеткой свободных слотов
type Response struct {
	Date  time.Time // Запрошенная дата
	Slots []Slot    // Свободные слоты всех подходящих сотрудников
}
