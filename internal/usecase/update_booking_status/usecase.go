package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingstorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case для перехода бронирования по машине состояний.
// Переход в cancelled дополнительно запускает каскад продвижения листа
// ожидания: событие освобождения слота ставится в очередь диспетчера
// уже после коммита отмены и никогда не влияет на ее результат
type UseCase struct {
	bookingRepo  BookingRepository
	directory    DirectoryClient
	notify       NotifyClient
	dispatcher   CascadeDispatcher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	directory DirectoryClient,
	notify NotifyClient,
	dispatcher CascadeDispatcher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		directory:    directory,
		notify:       notify,
		dispatcher:   dispatcher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет переход бронирования в новый статус
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, user=%d, status=%s", req.BookingID, req.UserID, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	targetStatus := domain.BookingStatus(req.Status)

	var updated *domain.Booking

	// 2. Читаем, проверяем переход и обновляем в одной транзакции:
	// GetByID внутри транзакции блокирует строку FOR UPDATE
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.1. Проверка прав на переход
		if err := uc.checkPermission(txCtx, booking, req.UserID, targetStatus); err != nil {
			return err
		}

		// 2.2. Проверка машины состояний; переход в текущий статус запрещен
		if !booking.CanTransitionTo(targetStatus) {
			uc.logger.Warn("UpdateBookingStatus: transition %s -> %s is not allowed for booking id=%d",
				booking.Status, targetStatus, booking.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, targetStatus)
		}

		// 2.3. Обновляем статус
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, targetStatus, req.Reason); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		booking.Status = targetStatus
		updated = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 3. Отмена закоммичена; дальнейшие шаги каскада не могут ее откатить
	if targetStatus == domain.StatusCancelled {
		updated.CancellationReason = req.Reason
		updated.CancelledAt = &now

		uc.enqueueCascade(updated, now)
		uc.notifyCancellation(ctx, updated)
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved to %s", updated.ID, targetStatus)

	return &Response{
		ID:          updated.ID,
		Status:      string(updated.Status),
		CancelledAt: updated.CancelledAt,
		UpdatedAt:   now,
	}, nil
}

// checkPermission проверяет права пользователя на переход.
// Клиент может только отменить собственное бронирование, остальные
// переходы доступны менеджеру бизнеса
func (uc *UseCase) checkPermission(ctx context.Context, booking *domain.Booking, userID int64, target domain.BookingStatus) error {
	if booking.ClientID == userID && target == domain.StatusCancelled {
		return nil
	}

	business, err := uc.directory.GetBusiness(ctx, booking.BusinessID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get business id=%d: %v", booking.BusinessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsManager(userID) {
		uc.logger.Warn("UpdateBookingStatus: user %d is not allowed to move booking %d to %s",
			userID, booking.ID, target)
		return ErrPermissionDenied
	}

	return nil
}

// enqueueCascade ставит событие освобождения слота в очередь каскада.
// Ошибка постановки логируется и не возвращается вызывающему
func (uc *UseCase) enqueueCascade(booking *domain.Booking, freedAt time.Time) {
	event := domain.NewSlotFreedEvent(booking, freedAt)
	if err := uc.dispatcher.Enqueue(event); err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to enqueue cascade event for booking %d: %v",
			booking.ID, err)
	}
}

// notifyCancellation отправляет уведомление об отмене fire-and-forget
func (uc *UseCase) notifyCancellation(ctx context.Context, booking *domain.Booking) {
	notification := &notifyservice.BookingCancelledNotification{
		EventID:    uuid.NewString(),
		BookingID:  booking.ID,
		BusinessID: booking.BusinessID,
		ClientID:   booking.ClientID,
		ServiceID:  booking.ServiceID,
		StartTime:  booking.StartTime,
		Reason:     booking.CancellationReason,
	}

	if err := uc.notify.SendBookingCancelled(ctx, notification); err != nil {
		uc.logger.Warn("UpdateBookingStatus: failed to send cancellation notification for booking %d: %v",
			booking.ID, err)
	}
}
