package update_booking_status

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !domain.IsValidStatus(domain.BookingStatus(req.Status)) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.Reason != nil {
		if domain.BookingStatus(req.Status) != domain.StatusCancelled {
			return fmt.Errorf("%w: reason is only allowed for cancellation", ErrInvalidInput)
		}
		if len(*req.Reason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: reason must not exceed %d characters",
				ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
	}

	return nil
}
