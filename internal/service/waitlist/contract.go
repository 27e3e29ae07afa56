package waitlist

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// WaitlistRepo интерфейс репозитория листа ожидания
type WaitlistRepo interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	ListByBusiness(ctx context.Context, businessID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
}

// Directory интерфейс клиента DirectoryService
type Directory interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error)
	GetClient(ctx context.Context, clientID int64) (*directoryservice.ClientProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
