package promote_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	waitliststorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Результаты обработки события для метрик каскада
const (
	resultPromoted     = "promoted"
	resultNoCandidates = "no_candidates"
	resultFailed       = "failed"
)

// UseCase каскад продвижения листа ожидания.
// Обрабатывает событие освобождения слота: находит самую старую подходящую
// waiting-запись (тот же бизнес и услуга, предпочитаемая дата не задана или
// совпадает с днем слота) и предлагает ей слот. Ровно одно продвижение на
// одну отмену; отсутствие кандидатов — тихий no-op.
// Отмена к этому моменту уже закоммичена: любая ошибка здесь логируется
// и не влияет на статус cancelled
type UseCase struct {
	waitlistRepo WaitlistRepository
	configs      ConfigResolver
	notify       NotifyClient
	txManager    TransactionManager
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр каскада
func NewUseCase(
	waitlistRepo WaitlistRepository,
	configs ConfigResolver,
	notify NotifyClient,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		waitlistRepo: waitlistRepo,
		configs:      configs,
		notify:       notify,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute обрабатывает событие освобождения слота
func (uc *UseCase) Execute(ctx context.Context, event domain.SlotFreedEvent) error {
	uc.logger.Info("PromoteWaitlist: event=%s, booking=%d, business=%d, service=%d, slot=%s",
		event.EventID, event.BookingID, event.BusinessID, event.ServiceID,
		event.StartTime.Format(domain.DateFormat))

	var promoted *domain.WaitlistEntry
	var offer domain.SlotOfferedEvent

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Кандидаты того же бизнеса и услуги, день слота подходит,
		// oldest first; строки заблокированы FOR UPDATE
		candidates, err := uc.waitlistRepo.MatchCandidates(txCtx, event.BusinessID, event.ServiceID, event.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to match candidates: %v", ErrInternal, err)
		}

		if len(candidates) == 0 {
			return nil
		}

		// 2. Окно ответа на предложение из конфигурации бизнеса
		config, err := uc.configs.ResolveConfig(txCtx, event.BusinessID, ptr.Ptr(event.BranchID), ptr.Ptr(event.ServiceID))
		if err != nil {
			return fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
		}

		expiresAt := uc.timeProvider.Now().Add(config.OfferResponseDuration())

		// 3. Продвигаем самую старую запись. Условное обновление по статусу
		// отсекает записи, которые успел забрать конкурентный каскад
		for _, candidate := range candidates {
			offer = domain.SlotOfferedEvent{
				EventID:        uuid.NewString(),
				WaitlistID:     candidate.ID,
				BusinessID:     event.BusinessID,
				ClientID:       candidate.ClientID,
				ServiceID:      event.ServiceID,
				BranchID:       event.BranchID,
				StaffID:        event.StaffID,
				SlotStartTime:  event.StartTime,
				SlotEndTime:    event.EndTime,
				OfferExpiresAt: expiresAt,
			}

			entry, err := uc.waitlistRepo.Promote(txCtx, candidate.ID, offer)
			if err != nil {
				if errors.Is(err, waitliststorage.ErrNotWaiting) {
					uc.logger.Warn("PromoteWaitlist: entry %d already claimed, trying next", candidate.ID)
					continue
				}
				return fmt.Errorf("%w: failed to promote entry %d: %v", ErrInternal, candidate.ID, err)
			}

			promoted = entry
			return nil
		}

		return nil
	})

	if err != nil {
		uc.metrics.IncCascadeEvent(resultFailed)
		uc.logger.Error("PromoteWaitlist: event %s failed: %v", event.EventID, err)
		return err
	}

	if promoted == nil {
		uc.metrics.IncCascadeEvent(resultNoCandidates)
		uc.logger.Info("PromoteWaitlist: event %s has no candidates", event.EventID)
		return nil
	}

	uc.metrics.IncCascadeEvent(resultPromoted)
	uc.metrics.IncWaitlistPromotion()
	uc.logger.Info("PromoteWaitlist: entry %d offered slot %s (expires %s)",
		promoted.ID, offer.SlotStartTime.Format(domain.DateFormat), offer.OfferExpiresAt)

	// 4. Уведомление fire-and-forget: предложение уже закоммичено,
	// ошибка доставки его не откатывает
	uc.sendOfferNotification(ctx, offer)

	return nil
}

// sendOfferNotification отправляет уведомление о предложении слота
func (uc *UseCase) sendOfferNotification(ctx context.Context, offer domain.SlotOfferedEvent) {
	notification := &notifyservice.SlotOfferedNotification{
		EventID:        offer.EventID,
		WaitlistID:     offer.WaitlistID,
		BusinessID:     offer.BusinessID,
		ClientID:       offer.ClientID,
		ServiceID:      offer.ServiceID,
		BranchID:       offer.BranchID,
		StaffID:        offer.StaffID,
		SlotStartTime:  offer.SlotStartTime,
		SlotEndTime:    offer.SlotEndTime,
		OfferExpiresAt: offer.OfferExpiresAt,
	}

	if err := uc.notify.SendSlotOffered(ctx, notification); err != nil {
		uc.logger.Warn("PromoteWaitlist: failed to send offer notification for entry %d: %v",
			offer.WaitlistID, err)
	}
}
