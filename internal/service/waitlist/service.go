package waitlist

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Service сервис листа ожидания: вступление в очередь и просмотр.
// Вступление не проверяет доступность слотов: запись всегда создается
// в статусе waiting, предложения приходят только через каскад отмен
type Service struct {
	entries   WaitlistRepo
	directory Directory
	log       Logger
}

// NewService создает новый сервис листа ожидания
func NewService(entries WaitlistRepo, directory Directory, log Logger) *Service {
	return &Service{
		entries:   entries,
		directory: directory,
		log:       log,
	}
}

// JoinRequest запрос на вступление в лист ожидания
type JoinRequest struct {
	BusinessID    int64
	ClientID      int64
	ServiceID     int64
	PreferredDate *time.Time // nil = любой день
}

// Join добавляет клиента в лист ожидания услуги.
// Валидирует только справочные данные: услуга и клиент должны существовать
// и быть активными
func (s *Service) Join(ctx context.Context, req JoinRequest) (*domain.WaitlistEntry, error) {
	service, err := s.directory.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, ErrServiceInactive
	}

	client, err := s.directory.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, ErrClientInactive
	}

	entry := &domain.WaitlistEntry{
		BusinessID:    req.BusinessID,
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		PreferredDate: normalizeDay(req.PreferredDate),
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create waitlist entry: %v", ErrInternal, err)
	}

	s.log.Info("waitlist: client %d joined waitlist for service %d (business %d, entry %d)",
		req.ClientID, req.ServiceID, req.BusinessID, created.ID)

	return created, nil
}

// ListForBusiness получает лист ожидания бизнеса в порядке FIFO.
// Доступ: только менеджер бизнеса
func (s *Service) ListForBusiness(ctx context.Context, businessID, userID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	business, err := s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsManager(userID) {
		return nil, ErrPermissionDenied
	}

	entries, err := s.entries.ListByBusiness(ctx, businessID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list waitlist entries: %v", ErrInternal, err)
	}

	return entries, nil
}

// normalizeDay обрезает предпочитаемую дату до начала суток UTC.
// Сопоставление с освободившимся слотом работает на уровне календарного дня
func normalizeDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}
