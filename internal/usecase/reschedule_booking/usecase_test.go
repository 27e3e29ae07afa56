package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	updatedStart *time.Time
	updatedEnd   *time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) UpdateSlot(_ context.Context, _ int64, startTime, endTime time.Time) error {
	f.updatedStart = &startTime
	f.updatedEnd = &endTime
	return nil
}

type fakeAvailability struct {
	result  *domain.SlotCheckResult
	lastReq availability.CheckSlotRequest
}

func (f *fakeAvailability) CheckSlot(_ context.Context, req availability.CheckSlotRequest) (*domain.SlotCheckResult, error) {
	f.lastReq = req
	return f.result, nil
}

type fakeConfigResolver struct{}

func (f *fakeConfigResolver) ResolveConfig(_ context.Context, businessID int64, _, _ *int64) (*domain.SchedulingConfig, error) {
	return domain.DefaultSchedulingConfig(businessID), nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(status domain.BookingStatus) *domain.Booking {
	start := time.Date(2026, 4, 22, 14, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              77,
		BusinessID:      1,
		BranchID:        10,
		StaffID:         7,
		ClientID:        500,
		ServiceID:       5,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          status,
	}
}

func mustTimeString(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newTestUseCase(repo *fakeBookingRepo, avail *fakeAvailability, now time.Time) *UseCase {
	uc := NewUseCase(repo, avail, &fakeConfigResolver{}, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_MovesBookingToNewSlot(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	avail := &fakeAvailability{result: &domain.SlotCheckResult{Available: true, StaffID: 7}}
	uc := newTestUseCase(repo, avail, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    500,
		Date:      time.Date(2026, 4, 23, 0, 0, 0, 0, time.UTC),
		StartTime: mustTimeString(t, "16:00"),
	})
	require.NoError(t, err)

	expectedStart := time.Date(2026, 4, 23, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedStart, resp.StartTime)
	assert.Equal(t, expectedStart.Add(time.Hour), resp.EndTime)
	// сотрудник и статус при переносе не меняются
	assert.Equal(t, int64(7), resp.StaffID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.NotNil(t, repo.updatedStart)
	assert.Equal(t, expectedStart, *repo.updatedStart)
}

func TestExecute_OwnBookingExcludedFromConflictCheck(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	avail := &fakeAvailability{result: &domain.SlotCheckResult{Available: true, StaffID: 7}}
	uc := newTestUseCase(repo, avail, now)

	// сдвиг на полчаса внутри собственного слота
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    500,
		Date:      time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC),
		StartTime: mustTimeString(t, "14:30"),
	})
	require.NoError(t, err)

	require.NotNil(t, avail.lastReq.ExcludeBookingID)
	assert.Equal(t, int64(77), *avail.lastReq.ExcludeBookingID)
	require.NotNil(t, avail.lastReq.StaffID)
	assert.Equal(t, int64(7), *avail.lastReq.StaffID)
}

func TestExecute_OnlyOwnerMayReschedule(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(repo, &fakeAvailability{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    999,
		Date:      time.Date(2026, 4, 23, 0, 0, 0, 0, time.UTC),
		StartTime: mustTimeString(t, "16:00"),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Nil(t, repo.updatedStart)
}

func TestExecute_TerminalStatusesNotReschedulable(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	statuses := []domain.BookingStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, status := range statuses {
		repo := &fakeBookingRepo{booking: testBooking(status)}
		uc := newTestUseCase(repo, &fakeAvailability{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 77,
			UserID:    500,
			Date:      time.Date(2026, 4, 23, 0, 0, 0, 0, time.UTC),
			StartTime: mustTimeString(t, "16:00"),
		})
		assert.ErrorIs(t, err, ErrNotReschedulable, "status %s", status)
	}
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	avail := &fakeAvailability{result: &domain.SlotCheckResult{
		Available: false,
		Reason:    "slot is already booked",
	}}
	uc := newTestUseCase(repo, avail, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    500,
		Date:      time.Date(2026, 4, 23, 0, 0, 0, 0, time.UTC),
		StartTime: mustTimeString(t, "16:00"),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.updatedStart)
}

func TestExecute_PastDateRejected(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(repo, &fakeAvailability{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    500,
		Date:      time.Date(2026, 4, 19, 0, 0, 0, 0, time.UTC),
		StartTime: mustTimeString(t, "16:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
