package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	configs      ConfigResolver
	directory    DirectoryClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityChecker AvailabilityChecker,
	configs ConfigResolver,
	directory DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availabilityChecker,
		configs:      configs,
		directory:    directory,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции
// с блокировкой конфликтной выборки: два пересекающихся запроса к одному
// сотруднику не могут закоммититься оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, business=%d, branch=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.BusinessID, req.BranchID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем клиента
	if _, err := uc.directory.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, directoryClient.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 4. Получаем услугу для денормализации и вычисления конца слота
	service, err := uc.directory.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Совмещаем дату и время слота
	startTime, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	endTime := domain.ComputeEnd(startTime, service.DurationMinutes)

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем проверку и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию планирования с учетом иерархии
		config, err := uc.configs.ResolveConfig(txCtx, req.BusinessID, ptr.Ptr(req.BranchID), ptr.Ptr(req.ServiceID))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve config: %v", err)
			return fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
		}

		// 6.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 6.3. Валидация минимального уведомления
		if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
			return err
		}

		// 6.4. Проверяем доступность слота; конфликтная выборка внутри
		// транзакции блокирует строки FOR UPDATE
		check, err := uc.availability.CheckSlot(txCtx, availability.CheckSlotRequest{
			BusinessID: req.BusinessID,
			BranchID:   req.BranchID,
			ServiceID:  req.ServiceID,
			StaffID:    req.StaffID,
			StartTime:  startTime,
		})
		if err != nil {
			return mapAvailabilityError(err)
		}

		if !check.Available {
			uc.logger.Warn("CreateBooking: slot not available: %s", check.Reason)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, check.Reason)
		}

		// 6.5. Создаем бронирование со статусом pending
		booking := &domain.Booking{
			BusinessID:      req.BusinessID,
			BranchID:        req.BranchID,
			StaffID:         check.StaffID,
			ClientID:        req.ClientID,
			ServiceID:       req.ServiceID,
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ClientNotes:     req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (staff=%d)", result.ID, result.StaffID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		BusinessID:      result.BusinessID,
		BranchID:        result.BranchID,
		ServiceID:       result.ServiceID,
		StaffID:         result.StaffID,
		Status:          string(result.Status),
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		ServiceName:     result.ServiceName,
		Notes:           result.ClientNotes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// mapAvailabilityError транслирует ошибки сервиса доступности в ошибки usecase
func mapAvailabilityError(err error) error {
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
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}
