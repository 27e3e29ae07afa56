package schedconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	configstorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedconfig"
)

// Service сервис конфигураций планирования.
// Чтение эффективной конфигурации открыто для внутренних потребителей
// (создание бронирования, каскад), изменение доступно только менеджеру бизнеса
type Service struct {
	configs   ConfigRepo
	directory Directory
	log       Logger
}

// NewService создает новый сервис конфигураций
func NewService(configs ConfigRepo, directory Directory, log Logger) *Service {
	return &Service{
		configs:   configs,
		directory: directory,
		log:       log,
	}
}

// ResolveConfig возвращает эффективную конфигурацию для филиала и услуги
// с учетом иерархии. Отсутствие сохраненной конфигурации не ошибка:
// возвращаются значения по умолчанию
func (s *Service) ResolveConfig(ctx context.Context, businessID int64, branchID, serviceID *int64) (*domain.SchedulingConfig, error) {
	cfg, err := s.configs.GetConfigWithHierarchy(ctx, businessID, branchID, serviceID)
	if err != nil {
		if errors.Is(err, configstorage.ErrConfigNotFound) {
			return domain.DefaultSchedulingConfig(businessID), nil
		}
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}
	return cfg, nil
}

// ListForBusiness получает все конфигурации бизнеса.
// Доступ: только менеджер бизнеса
func (s *Service) ListForBusiness(ctx context.Context, businessID, userID int64) ([]*domain.SchedulingConfig, error) {
	if err := s.requireManager(ctx, businessID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configs.GetAllByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list configs: %v", ErrInternal, err)
	}

	return configs, nil
}

// Save создает или обновляет конфигурацию уровня (business, branch?, service?).
// Доступ: только менеджер бизнеса
func (s *Service) Save(ctx context.Context, cfg *domain.SchedulingConfig, userID int64) (*domain.SchedulingConfig, error) {
	if err := s.requireManager(ctx, cfg.BusinessID, userID); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	saved, err := s.configs.Upsert(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to save config: %v", ErrInternal, err)
	}

	s.log.Info("schedconfig: business %d config %d saved by user %d", cfg.BusinessID, saved.ID, userID)

	return saved, nil
}

// requireManager проверяет права менеджера бизнеса
func (s *Service) requireManager(ctx context.Context, businessID, userID int64) error {
	business, err := s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	if !business.IsManager(userID) {
		return ErrPermissionDenied
	}
	return nil
}

// validateConfig проверяет границы параметров конфигурации
func validateConfig(cfg *domain.SchedulingConfig) error {
	if cfg.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes ||
		cfg.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min_booking_notice_minutes must be in [%d, %d]",
			ErrInvalidConfig, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}
	if cfg.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		cfg.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance_booking_days must be in [%d, %d]",
			ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if cfg.OfferResponseMinutes < domain.MinOfferResponseMinutes ||
		cfg.OfferResponseMinutes > domain.MaxOfferResponseMinutes {
		return fmt.Errorf("%w: offer_response_minutes must be in [%d, %d]",
			ErrInvalidConfig, domain.MinOfferResponseMinutes, domain.MaxOfferResponseMinutes)
	}
	return nil
}
