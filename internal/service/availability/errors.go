package availability

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не принадлежит бизнесу
	ErrBranchNotFound = errors.New("availability.service: branch not found")

	// ErrServiceInactive возвращается для выключенной услуги
	ErrServiceInactive = errors.New("availability.service: service is inactive")

	// ErrServiceNotAtBranch возвращается, когда услуга не оказывается на филиале
	ErrServiceNotAtBranch = errors.New("availability.service: service is not available at branch")

	// ErrStaffInactive возвращается для неактивного сотрудника
	ErrStaffInactive = errors.New("availability.service: staff is inactive")

	// ErrStaffNotQualified возвращается, когда сотрудник не оказывает услугу
	// или не работает на указанном филиале
	ErrStaffNotQualified = errors.New("availability.service: staff is not qualified for service at branch")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
