package get_business_config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type ConfigService interface {
	ListForBusiness(ctx context.Context, businessID, userID int64) ([]*domain.SchedulingConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
