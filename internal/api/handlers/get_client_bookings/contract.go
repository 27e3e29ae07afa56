package get_client_bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type BookingsService interface {
	GetClientBookings(ctx context.Context, clientID, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
