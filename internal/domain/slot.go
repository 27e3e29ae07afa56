package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// AvailableSlot represents a bookable time slot for a staff member
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	StaffID         int64
}

// SlotCheckResult результат проверки доступности слота
// Не ошибка: занятый слот — это нормальный отрицательный результат
type SlotCheckResult struct {
	Available bool

	// StaffID конкретный свободный сотрудник (заполняется при Available=true,
	// в том числе при разрешении "любого свободного")
	StaffID int64

	// ConflictingBookingID бронирование, из-за которого слот занят
	// (заполняется, когда проверялся конкретный сотрудник)
	ConflictingBookingID *int64

	// Reason человекочитаемая причина отказа ("no staff available" и т.п.)
	Reason string
}
