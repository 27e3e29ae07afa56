package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// UseCase use case получения сетки свободных слотов на день
type UseCase struct {
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityService AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availabilityService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, branch=%d, service=%d, date=%s",
		req.BusinessID, req.BranchID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Строим сетку через сервис доступности
	slots, err := uc.availability.ListDaySlots(ctx, availability.DaySlotsRequest{
		BusinessID: req.BusinessID,
		BranchID:   req.BranchID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		Date:       req.Date,
	})
	if err != nil {
		return nil, uc.mapError(err)
	}

	// 3. Конвертируем в response
	response := &Response{
		Date:  req.Date,
		Slots: make([]Slot, 0, len(slots)),
	}
	for _, s := range slots {
		response.Slots = append(response.Slots, Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			StaffID:         s.StaffID,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for business=%d, branch=%d, date=%s",
		len(response.Slots), req.BusinessID, req.BranchID, req.Date.Format(domain.DateFormat))

	return response, nil
}

// mapError транслирует ошибки сервиса доступности в ошибки usecase
func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, directoryClient.ErrBusinessNotFound):
		return ErrBusinessNotFound
	case errors.Is(err, directoryClient.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, directoryClient.ErrStaffNotFound):
		return ErrStaffNotFound
	case errors.Is(err, availability.ErrBranchNotFound):
		return ErrBranchNotFound
	case errors.Is(err, availability.ErrServiceInactive),
		errors.Is(err, availability.ErrServiceNotAtBranch):
		return ErrServiceUnavailable
	case errors.Is(err, availability.ErrStaffInactive),
		errors.Is(err, availability.ErrStaffNotQualified):
		return ErrStaffUnavailable
	default:
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}
