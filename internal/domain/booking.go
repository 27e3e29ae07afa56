package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking represents a client's appointment for a service at a branch,
// pinned to a concrete staff member
type Booking struct {
	ID         int64
	BusinessID int64
	BranchID   int64
	StaffID    int64 // всегда конкретный сотрудник: "любой свободный" разрешается при создании
	ClientID   int64
	ServiceID  int64

	StartTime       time.Time
	EndTime         time.Time // всегда StartTime + длительность услуги
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName string
	ClientNotes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// allowedTransitions описывает машину состояний бронирования:
//
//	pending -> confirmed -> in_progress -> completed  (терминальный)
//	pending|confirmed|in_progress -> cancelled        (терминальный)
//	pending|confirmed -> no_show                      (терминальный)
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransitionTo returns true if the booking may move to the given status.
// A transition to the current status is not allowed.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsBlocking returns true if the booking counts toward slot conflict detection
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.CanTransitionTo(StatusCancelled)
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsValidStatus returns true if s is a known booking status
func IsValidStatus(s BookingStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	BranchID        *int64         // Фильтр по филиалу (опционально)
	StaffID         *int64         // Фильтр по сотруднику (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли терминальные бронирования
}

// BlockingBookingsFilter фильтр конфликтной выборки: блокирующие бронирования
// ресурса (сотрудника или филиала), пересекающиеся с окном [WindowStart, WindowEnd)
type BlockingBookingsFilter struct {
	StaffID          *int64    // Ресурс: конкретный сотрудник
	BranchID         *int64    // Ресурс: филиал (когда сотрудник не задан)
	WindowStart      time.Time // Начало окна (включительно)
	WindowEnd        time.Time // Конец окна (не включительно)
	ExcludeBookingID *int64    // Исключить собственное бронирование (для переноса)
}
