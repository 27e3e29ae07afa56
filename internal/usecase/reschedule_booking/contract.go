package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateSlot(ctx context.Context, id int64, startTime, endTime time.Time) error
}

// AvailabilityChecker интерфейс сервиса проверки доступности слотов
type AvailabilityChecker interface {
	CheckSlot(ctx context.Context, req availability.CheckSlotRequest) (*domain.SlotCheckResult, error)
}

// ConfigResolver интерфейс получения эффективной конфигурации планирования
type ConfigResolver interface {
	ResolveConfig(ctx context.Context, businessID int64, branchID, serviceID *int64) (*domain.SchedulingConfig, error)
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
