package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingstorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для переноса бронирования на другой слот.
// Проверка нового слота и перенос выполняются атомарно; собственная
// резервация бронирования исключается из конфликтной выборки, поэтому
// перенос внутри своего же слота (сдвиг на полчаса вперед) возможен
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	configs      ConfigResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityChecker AvailabilityChecker,
	configs ConfigResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availabilityChecker,
		configs:      configs,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет перенос бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, date=%s, time=%s",
		req.BookingID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 2. Читаем, проверяем новый слот и переносим в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.1. Перенести может только владелец бронирования
		if booking.ClientID != req.UserID {
			uc.logger.Warn("RescheduleBooking: user %d does not own booking %d", req.UserID, booking.ID)
			return ErrPermissionDenied
		}

		// 2.2. Переносятся только pending и confirmed
		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled",
				booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrNotReschedulable, booking.Status)
		}

		// 2.3. Валидация новой даты и уведомления по конфигурации
		config, err := uc.configs.ResolveConfig(txCtx, booking.BusinessID, ptr.Ptr(booking.BranchID), ptr.Ptr(booking.ServiceID))
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to resolve config: %v", err)
			return fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
		}

		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
			return err
		}

		if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("RescheduleBooking: notice validation failed: %v", err)
			return err
		}

		newStart, err := req.StartTime.At(req.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
		}
		newEnd := domain.ComputeEnd(newStart, booking.DurationMinutes)

		// 2.4. Проверяем новый слот, исключая собственную резервацию
		check, err := uc.availability.CheckSlot(txCtx, availability.CheckSlotRequest{
			BusinessID:       booking.BusinessID,
			BranchID:         booking.BranchID,
			ServiceID:        booking.ServiceID,
			StaffID:          &booking.StaffID,
			StartTime:        newStart,
			ExcludeBookingID: &booking.ID,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !check.Available {
			uc.logger.Warn("RescheduleBooking: slot not available: %s", check.Reason)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, check.Reason)
		}

		// 2.5. Переносим
		if err := uc.bookingRepo.UpdateSlot(txCtx, booking.ID, newStart, newEnd); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update slot: %v", err)
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		booking.StartTime = newStart
		booking.EndTime = newEnd
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s", result.ID, result.StartTime.Format(time.RFC3339))

	return &Response{
		ID:              result.ID,
		StaffID:         result.StaffID,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		UpdatedAt:       now,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

// validateDate проверяет, что дата подходит для переноса
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := nowOnly.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidDate, advanceBookingDays)
	}

	return nil
}

// validateBookingNotice проверяет минимальное уведомление для переноса на сегодня
func validateBookingNotice(date time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !domain.SameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}
