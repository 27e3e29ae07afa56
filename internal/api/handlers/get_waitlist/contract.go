package get_waitlist

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type WaitlistService interface {
	ListForBusiness(ctx context.Context, businessID, userID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
