package schedconfig

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// ConfigRepo интерфейс репозитория конфигураций планирования
type ConfigRepo interface {
	GetConfigWithHierarchy(ctx context.Context, businessID int64, branchID, serviceID *int64) (*domain.SchedulingConfig, error)
	GetAllByBusiness(ctx context.Context, businessID int64) ([]*domain.SchedulingConfig, error)
	Upsert(ctx context.Context, cfg *domain.SchedulingConfig) (*domain.SchedulingConfig, error)
}

// Directory интерфейс клиента DirectoryService для проверки прав менеджера
type Directory interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
