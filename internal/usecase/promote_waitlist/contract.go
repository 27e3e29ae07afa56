package promote_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifyservice"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	MatchCandidates(ctx context.Context, businessID, serviceID int64, slotDay time.Time) ([]*domain.WaitlistEntry, error)
	Promote(ctx context.Context, id int64, offer domain.SlotOfferedEvent) (*domain.WaitlistEntry, error)
}

// ConfigResolver интерфейс получения эффективной конфигурации планирования
type ConfigResolver interface {
	ResolveConfig(ctx context.Context, businessID int64, branchID, serviceID *int64) (*domain.SchedulingConfig, error)
}

// NotifyClient интерфейс клиента NotifyService
type NotifyClient interface {
	SendSlotOffered(ctx context.Context, n *notifyservice.SlotOfferedNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsCollector интерфейс счетчиков каскада
type MetricsCollector interface {
	IncCascadeEvent(result string)
	IncWaitlistPromotion()
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
