package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// slotStepMinutes шаг сетки свободных слотов
const slotStepMinutes = 30

// Service сервис проверки доступности слотов.
// Единственная точка принятия решения "слот свободен/занят": создание
// бронирования, перенос и каскад листа ожидания ходят через него
type Service struct {
	directory Directory
	bookings  BookingRepo
	log       Logger
}

// NewService создает новый сервис доступности
func NewService(directory Directory, bookings BookingRepo, log Logger) *Service {
	return &Service{
		directory: directory,
		bookings:  bookings,
		log:       log,
	}
}

// CheckSlot проверяет доступность слота для услуги.
// Если StaffID не задан, разрешает "любого свободного": перебирает
// квалифицированных сотрудников филиала в порядке ответа справочника
// и возвращает первого без конфликтов.
// Занятый слот не ошибка: возвращается SlotCheckResult с Available=false
func (s *Service) CheckSlot(ctx context.Context, req CheckSlotRequest) (*domain.SlotCheckResult, error) {
	service, branch, err := s.resolveServiceAndBranch(ctx, req.BusinessID, req.BranchID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	endTime := domain.ComputeEnd(req.StartTime, service.DurationMinutes)

	if ok, reason := s.withinWorkingHours(branch, req.StartTime, endTime); !ok {
		return &domain.SlotCheckResult{Available: false, Reason: reason}, nil
	}

	if req.StaffID != nil {
		return s.checkStaffSlot(ctx, req, *req.StaffID, endTime)
	}

	return s.checkAnyStaffSlot(ctx, req, service, endTime)
}

// ListDaySlots строит сетку свободных слотов на день с шагом slotStepMinutes.
// Для каждого сотрудника возвращаются только слоты без конфликтов,
// целиком попадающие в рабочие часы филиала
func (s *Service) ListDaySlots(ctx context.Context, req DaySlotsRequest) ([]domain.AvailableSlot, error) {
	service, branch, err := s.resolveServiceAndBranch(ctx, req.BusinessID, req.BranchID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	day := branch.WorkingHours.ForWeekday(req.Date.Weekday())
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return []domain.AvailableSlot{}, nil
	}

	openAt, err := types.TimeString(*day.OpenTime).At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time %q: %v", ErrInternal, *day.OpenTime, err)
	}
	closeAt, err := types.TimeString(*day.CloseTime).At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time %q: %v", ErrInternal, *day.CloseTime, err)
	}

	staff, err := s.candidateStaff(ctx, req.BusinessID, req.BranchID, req.ServiceID, req.StaffID)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.AvailableSlot, 0)
	for i := range staff {
		member := &staff[i]

		staffSlots, err := s.daySlotsForStaff(ctx, member.ID, service.DurationMinutes, openAt, closeAt)
		if err != nil {
			return nil, err
		}
		slots = append(slots, staffSlots...)
	}

	return slots, nil
}

// daySlotsForStaff строит свободные слоты одного сотрудника в пределах рабочего дня
func (s *Service) daySlotsForStaff(ctx context.Context, staffID int64, durationMinutes int, openAt, closeAt time.Time) ([]domain.AvailableSlot, error) {
	blocking, err := s.bookings.GetBlocking(ctx, domain.BlockingBookingsFilter{
		StaffID:     &staffID,
		WindowStart: openAt,
		WindowEnd:   closeAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load blocking bookings: %v", ErrInternal, err)
	}

	slots := make([]domain.AvailableSlot, 0)
	for start := openAt; !domain.ComputeEnd(start, durationMinutes).After(closeAt); start = start.Add(slotStepMinutes * time.Minute) {
		end := domain.ComputeEnd(start, durationMinutes)

		if findConflict(blocking, start, end, nil) == nil {
			slots = append(slots, domain.AvailableSlot{
				StartTime:       types.NewTimeString(start),
				DurationMinutes: durationMinutes,
				StaffID:         staffID,
			})
		}
	}

	return slots, nil
}

// checkStaffSlot проверяет слот для конкретного сотрудника
func (s *Service) checkStaffSlot(ctx context.Context, req CheckSlotRequest, staffID int64, endTime time.Time) (*domain.SlotCheckResult, error) {
	staff, err := s.directory.GetStaff(ctx, req.BusinessID, staffID)
	if err != nil {
		return nil, err
	}

	if !staff.Active {
		return nil, ErrStaffInactive
	}
	if !staff.QualifiedFor(req.ServiceID) || !staff.WorksAtBranch(req.BranchID) {
		return nil, ErrStaffNotQualified
	}

	blocking, err := s.bookings.GetBlocking(ctx, domain.BlockingBookingsFilter{
		StaffID:          &staffID,
		WindowStart:      req.StartTime,
		WindowEnd:        endTime,
		ExcludeBookingID: req.ExcludeBookingID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load blocking bookings: %v", ErrInternal, err)
	}

	if conflict := findConflict(blocking, req.StartTime, endTime, req.ExcludeBookingID); conflict != nil {
		return &domain.SlotCheckResult{
			Available:            false,
			ConflictingBookingID: &conflict.ID,
			Reason:               "slot is already booked",
		}, nil
	}

	return &domain.SlotCheckResult{Available: true, StaffID: staffID}, nil
}

// checkAnyStaffSlot разрешает "любого свободного сотрудника"
func (s *Service) checkAnyStaffSlot(ctx context.Context, req CheckSlotRequest, service *directoryservice.Service, endTime time.Time) (*domain.SlotCheckResult, error) {
	staff, err := s.directory.ListQualifiedStaff(ctx, req.BusinessID, req.BranchID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	if len(staff) == 0 {
		return &domain.SlotCheckResult{Available: false, Reason: "no qualified staff at branch"}, nil
	}

	for i := range staff {
		member := &staff[i]

		blocking, err := s.bookings.GetBlocking(ctx, domain.BlockingBookingsFilter{
			StaffID:          &member.ID,
			WindowStart:      req.StartTime,
			WindowEnd:        endTime,
			ExcludeBookingID: req.ExcludeBookingID,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load blocking bookings: %v", ErrInternal, err)
		}

		if findConflict(blocking, req.StartTime, endTime, req.ExcludeBookingID) == nil {
			return &domain.SlotCheckResult{Available: true, StaffID: member.ID}, nil
		}
	}

	return &domain.SlotCheckResult{Available: false, Reason: "no staff available for the slot"}, nil
}

// resolveServiceAndBranch загружает услугу и филиал, проверяя их согласованность
func (s *Service) resolveServiceAndBranch(ctx context.Context, businessID, branchID, serviceID int64) (*directoryservice.Service, *directoryservice.Branch, error) {
	service, err := s.directory.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, nil, err
	}
	if !service.Active {
		return nil, nil, ErrServiceInactive
	}
	if !service.AvailableAtBranch(branchID) {
		return nil, nil, ErrServiceNotAtBranch
	}

	business, err := s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}

	branch, ok := business.BranchByID(branchID)
	if !ok {
		return nil, nil, ErrBranchNotFound
	}

	return service, branch, nil
}

// withinWorkingHours проверяет, что слот целиком попадает в рабочие часы филиала
func (s *Service) withinWorkingHours(branch *directoryservice.Branch, startTime, endTime time.Time) (bool, string) {
	day := branch.WorkingHours.ForWeekday(startTime.Weekday())
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return false, "branch is closed on this day"
	}

	openAt, err := types.TimeString(*day.OpenTime).At(startTime)
	if err != nil {
		s.log.Warn("availability: branch %d has invalid open time %q", branch.ID, *day.OpenTime)
		return false, "branch working hours are not configured"
	}
	closeAt, err := types.TimeString(*day.CloseTime).At(startTime)
	if err != nil {
		s.log.Warn("availability: branch %d has invalid close time %q", branch.ID, *day.CloseTime)
		return false, "branch working hours are not configured"
	}

	if startTime.Before(openAt) || endTime.After(closeAt) {
		return false, "slot is outside branch working hours"
	}

	return true, ""
}

// candidateStaff возвращает сотрудников для построения сетки слотов
func (s *Service) candidateStaff(ctx context.Context, businessID, branchID, serviceID int64, staffID *int64) ([]directoryservice.Staff, error) {
	if staffID == nil {
		return s.directory.ListQualifiedStaff(ctx, businessID, branchID, serviceID)
	}

	staff, err := s.directory.GetStaff(ctx, businessID, *staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Active {
		return nil, ErrStaffInactive
	}
	if !staff.QualifiedFor(serviceID) || !staff.WorksAtBranch(branchID) {
		return nil, ErrStaffNotQualified
	}

	return []directoryservice.Staff{*staff}, nil
}

// findConflict возвращает первое блокирующее бронирование, пересекающееся со слотом.
// Выборка из БД уже отфильтрована по окну, проверка здесь защищает от граничных
// случаев и исключает собственное бронирование при переносе
func findConflict(blocking []*domain.Booking, start, end time.Time, excludeID *int64) *domain.Booking {
	for _, b := range blocking {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return b
		}
	}
	return nil
}
