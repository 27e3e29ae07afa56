package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingstorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	listed  []*domain.Booking
	getErr  error

	lastFilter *domain.BusinessBookingsFilter
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByClientID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.listed, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	return f.listed, nil
}

type fakeDirectory struct {
	managerID int64
}

func (f *fakeDirectory) GetBusiness(_ context.Context, businessID int64) (*directoryservice.Business, error) {
	return &directoryservice.Business{
		ID:         businessID,
		Name:       "Барбершоп",
		ManagerIDs: []int64{f.managerID},
	}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	start := time.Date(2026, 4, 22, 14, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         77,
		BusinessID: 1,
		ClientID:   500,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     domain.StatusConfirmed,
	}
}

func TestGetByID_OwnerSeesOwnBooking(t *testing.T) {
	svc := NewService(&fakeBookingRepo{booking: testBooking()}, &fakeDirectory{managerID: 42}, noopLogger{})

	booking, err := svc.GetByID(context.Background(), 77, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(77), booking.ID)
}

func TestGetByID_ManagerSeesBusinessBooking(t *testing.T) {
	svc := NewService(&fakeBookingRepo{booking: testBooking()}, &fakeDirectory{managerID: 42}, noopLogger{})

	booking, err := svc.GetByID(context.Background(), 77, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(77), booking.ID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc := NewService(&fakeBookingRepo{booking: testBooking()}, &fakeDirectory{managerID: 42}, noopLogger{})

	_, err := svc.GetByID(context.Background(), 77, 999)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestGetByID_NotFoundMapped(t *testing.T) {
	svc := NewService(&fakeBookingRepo{getErr: bookingstorage.ErrBookingNotFound}, &fakeDirectory{}, noopLogger{})

	_, err := svc.GetByID(context.Background(), 77, 500)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClientBookings_SelfOnly(t *testing.T) {
	repo := &fakeBookingRepo{listed: []*domain.Booking{testBooking()}}
	svc := NewService(repo, &fakeDirectory{}, noopLogger{})

	bookings, err := svc.GetClientBookings(context.Background(), 500, 500, nil)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = svc.GetClientBookings(context.Background(), 500, 501, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestGetBusinessBookings_ManagerOnly(t *testing.T) {
	repo := &fakeBookingRepo{listed: []*domain.Booking{testBooking()}}
	svc := NewService(repo, &fakeDirectory{managerID: 42}, noopLogger{})

	filter := domain.BusinessBookingsFilter{BusinessID: 1}

	bookings, err := svc.GetBusinessBookings(context.Background(), filter, 42)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(1), repo.lastFilter.BusinessID)

	_, err = svc.GetBusinessBookings(context.Background(), filter, 999)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
