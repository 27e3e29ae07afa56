package update_business_config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type ConfigService interface {
	Save(ctx context.Context, cfg *domain.SchedulingConfig, userID int64) (*domain.SchedulingConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
