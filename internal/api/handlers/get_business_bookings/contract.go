package get_business_bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type BookingsService interface {
	GetBusinessBookings(ctx context.Context, filter domain.BusinessBookingsFilter, userID int64) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
