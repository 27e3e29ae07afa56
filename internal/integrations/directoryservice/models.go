package directoryservice

import "time"

// Business модель бизнеса из DirectoryService
type Business struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	ManagerIDs []int64  `json:"manager_ids"`
	Branches   []Branch `json:"branches"`
}

// Branch модель филиала бизнеса
type Branch struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// WeekSchedule расписание работы филиала по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "20:00"
}

// ForWeekday возвращает расписание филиала на указанный день недели
func (w WeekSchedule) ForWeekday(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Service модель услуги из DirectoryService
type Service struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"business_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	BranchIDs       []int64 `json:"branch_ids"`
	Active          bool    `json:"active"`
}

// Staff модель сотрудника из DirectoryService
type Staff struct {
	ID         int64   `json:"id"`
	BusinessID int64   `json:"business_id"`
	Name       string  `json:"name"`
	Active     bool    `json:"active"`
	ServiceIDs []int64 `json:"service_ids"`
	BranchIDs  []int64 `json:"branch_ids"`
}

// ClientProfile модель клиента из DirectoryService
type ClientProfile struct {
	ID     int64 `json:"id"`
	Active bool  `json:"active"`
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BranchByID возвращает филиал бизнеса по ID
func (b *Business) BranchByID(branchID int64) (*Branch, bool) {
	for i := range b.Branches {
		if b.Branches[i].ID == branchID {
			return &b.Branches[i], true
		}
	}
	return nil, false
}

// IsManager проверяет, что пользователь входит в список менеджеров бизнеса
func (b *Business) IsManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AvailableAtBranch проверяет, что услуга оказывается на указанном филиале
func (s *Service) AvailableAtBranch(branchID int64) bool {
	for _, id := range s.BranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}

// QualifiedFor проверяет, что сотрудник оказывает указанную услугу
func (s *Staff) QualifiedFor(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// WorksAtBranch проверяет, что сотрудник работает на указанном филиале
func (s *Staff) WorksAtBranch(branchID int64) bool {
	for _, id := range s.BranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}
