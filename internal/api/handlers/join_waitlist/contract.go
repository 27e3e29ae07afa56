package join_waitlist

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	waitlistService "github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
)

type WaitlistService interface {
	Join(ctx context.Context, req waitlistService.JoinRequest) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
