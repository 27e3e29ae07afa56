package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := *booking
	b.ID = 1001
	f.created = &b
	return &b, nil
}

type fakeAvailability struct {
	result  *domain.SlotCheckResult
	err     error
	lastReq availability.CheckSlotRequest
}

func (f *fakeAvailability) CheckSlot(_ context.Context, req availability.CheckSlotRequest) (*domain.SlotCheckResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeConfigResolver struct {
	config *domain.SchedulingConfig
}

func (f *fakeConfigResolver) ResolveConfig(_ context.Context, businessID int64, _, _ *int64) (*domain.SchedulingConfig, error) {
	if f.config != nil {
		return f.config, nil
	}
	return domain.DefaultSchedulingConfig(businessID), nil
}

type fakeDirectory struct {
	service   *directoryservice.Service
	client    *directoryservice.ClientProfile
	svcErr    error
	clientErr error
}

func (f *fakeDirectory) GetService(_ context.Context, _, _ int64) (*directoryservice.Service, error) {
	if f.svcErr != nil {
		return nil, f.svcErr
	}
	return f.service, nil
}

func (f *fakeDirectory) GetClient(_ context.Context, _ int64) (*directoryservice.ClientProfile, error) {
	if f.clientErr != nil {
		return nil, f.clientErr
	}
	return f.client, nil
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

func testService() *directoryservice.Service {
	return &directoryservice.Service{
		ID:              5,
		BusinessID:      1,
		Name:            "Мужская стрижка",
		DurationMinutes: 60,
		BranchIDs:       []int64{10},
		Active:          true,
	}
}

func mustTimeString(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func validRequest(t *testing.T, date time.Time) *Request {
	return &Request{
		ClientID:   500,
		BusinessID: 1,
		BranchID:   10,
		ServiceID:  5,
		Date:       date,
		StartTime:  mustTimeString(t, "14:00"),
	}
}

func newTestUseCase(repo *fakeBookingRepo, avail *fakeAvailability, configs *fakeConfigResolver, now time.Time) *UseCase {
	directory := &fakeDirectory{
		service: testService(),
		client:  &directoryservice.ClientProfile{ID: 500, Active: true},
	}
	uc := NewUseCase(repo, avail, configs, directory, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{}
	avail := &fakeAvailability{result: &domain.SlotCheckResult{Available: true, StaffID: 7}}
	uc := newTestUseCase(repo, avail, &fakeConfigResolver{}, now)

	resp, err := uc.Execute(context.Background(), validRequest(t, date))
	require.NoError(t, err)

	assert.Equal(t, int64(1001), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(7), resp.StaffID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Мужская стрижка", resp.ServiceName)

	// конец слота = начало + длительность услуги
	expectedStart := time.Date(2026, 4, 22, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedStart, resp.StartTime)
	assert.Equal(t, expectedStart.Add(time.Hour), resp.EndTime)
}

func TestExecute_AnyStaffResolvedAtCreation(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{}
	avail := &fakeAvailability{result: &domain.SlotCheckResult{Available: true, StaffID: 9}}
	uc := newTestUseCase(repo, avail, &fakeConfigResolver{}, now)

	req := validRequest(t, date)
	req.StaffID = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// бронирование всегда хранит конкретного сотрудника
	assert.Nil(t, avail.lastReq.StaffID)
	assert.Equal(t, int64(9), resp.StaffID)
	assert.Equal(t, int64(9), repo.created.StaffID)
}

func TestExecute_SlotTaken(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{}
	avail := &fakeAvailability{result: &domain.SlotCheckResult{
		Available:            false,
		ConflictingBookingID: ptr.Ptr(int64(42)),
		Reason:               "slot overlaps booking 42",
	}}
	uc := newTestUseCase(repo, avail, &fakeConfigResolver{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, date))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_DateInPast(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 19, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailability{}, &fakeConfigResolver{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, date))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondAdvanceLimit(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 15)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailability{}, &fakeConfigResolver{
		config: &domain.SchedulingConfig{
			BusinessID:              1,
			MinBookingNoticeMinutes: 60,
			AdvanceBookingDays:      14,
			OfferResponseMinutes:    30,
		},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, date))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	// слот сегодня в 14:00, текущее время 13:30, минимальное уведомление 60 минут
	now := time.Date(2026, 4, 22, 13, 30, 0, 0, time.UTC)
	date := time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailability{}, &fakeConfigResolver{
		config: &domain.SchedulingConfig{
			BusinessID:              1,
			MinBookingNoticeMinutes: 60,
			AdvanceBookingDays:      30,
			OfferResponseMinutes:    30,
		},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, date))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_StaffUnavailableMapped(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)

	avail := &fakeAvailability{err: availability.ErrStaffNotQualified}
	uc := newTestUseCase(&fakeBookingRepo{}, avail, &fakeConfigResolver{}, now)

	req := validRequest(t, date)
	req.StaffID = ptr.Ptr(int64(7))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailability{}, &fakeConfigResolver{}, now)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero client", func(r *Request) { r.ClientID = 0 }},
		{"zero business", func(r *Request) { r.BusinessID = 0 }},
		{"negative branch", func(r *Request) { r.BranchID = -1 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero staff pointer", func(r *Request) { r.StaffID = ptr.Ptr(int64(0)) }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t, date)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
