package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_available_slots: business not found")

	// ErrBranchNotFound возвращается, когда филиал не найден у бизнеса
	ErrBranchNotFound = errors.New("get_available_slots: branch not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceUnavailable возвращается для выключенной услуги
	// или услуги, не оказываемой на филиале
	ErrServiceUnavailable = errors.New("get_available_slots: service is not available")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("get_available_slots: staff not found")

	// ErrStaffUnavailable возвращается для неактивного или неподходящего сотрудника
	ErrStaffUnavailable = errors.New("get_available_slots: staff is not available")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
