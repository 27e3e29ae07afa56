package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingstorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

// Service сервис чтения бронирований с проверкой прав доступа.
// Клиент видит только свои бронирования, менеджер — бронирования своего бизнеса
type Service struct {
	bookings  BookingRepo
	directory Directory
	log       Logger
}

// NewService создает новый сервис бронирований
func NewService(bookings BookingRepo, directory Directory, log Logger) *Service {
	return &Service{
		bookings:  bookings,
		directory: directory,
		log:       log,
	}
}

// GetByID получает бронирование по ID.
// Доступ: владелец бронирования или менеджер бизнеса
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingstorage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.ClientID == userID {
		return booking, nil
	}

	isManager, err := s.isBusinessManager(ctx, booking.BusinessID, userID)
	if err != nil {
		return nil, err
	}
	if !isManager {
		return nil, ErrPermissionDenied
	}

	return booking, nil
}

// GetClientBookings получает бронирования клиента.
// Доступ: только сам клиент
func (s *Service) GetClientBookings(ctx context.Context, clientID, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if clientID != userID {
		return nil, ErrPermissionDenied
	}

	bookings, err := s.bookings.GetByClientID(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией.
// Доступ: только менеджер бизнеса
func (s *Service) GetBusinessBookings(ctx context.Context, filter domain.BusinessBookingsFilter, userID int64) ([]*domain.Booking, error) {
	isManager, err := s.isBusinessManager(ctx, filter.BusinessID, userID)
	if err != nil {
		return nil, err
	}
	if !isManager {
		return nil, ErrPermissionDenied
	}

	bookings, err := s.bookings.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get business bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}

// isBusinessManager проверяет, что пользователь является менеджером бизнеса
func (s *Service) isBusinessManager(ctx context.Context, businessID, userID int64) (bool, error) {
	business, err := s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		return false, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business.IsManager(userID), nil
}
