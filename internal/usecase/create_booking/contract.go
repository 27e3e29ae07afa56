package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityChecker интерфейс сервиса проверки доступности слотов
type AvailabilityChecker interface {
	CheckSlot(ctx context.Context, req availability.CheckSlotRequest) (*domain.SlotCheckResult, error)
}

// ConfigResolver интерфейс получения эффективной конфигурации планирования
type ConfigResolver interface {
	ResolveConfig(ctx context.Context, businessID int64, branchID, serviceID *int64) (*domain.SchedulingConfig, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error)
	GetClient(ctx context.Context, clientID int64) (*directoryservice.ClientProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
