package update_booking_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const (
	testClientID  = int64(500)
	testManagerID = int64(42)
	testOtherID   = int64(999)
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	updatedStatus *domain.BookingStatus
	updatedReason *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus, reason *string) error {
	f.updatedStatus = &status
	f.updatedReason = reason
	return nil
}

type fakeDirectory struct{}

func (f *fakeDirectory) GetBusiness(_ context.Context, businessID int64) (*directoryservice.Business, error) {
	return &directoryservice.Business{
		ID:         businessID,
		Name:       "Барбершоп на Лесной",
		ManagerIDs: []int64{testManagerID},
	}, nil
}

type fakeNotify struct {
	cancellations []*notifyservice.BookingCancelledNotification
}

func (f *fakeNotify) SendBookingCancelled(_ context.Context, n *notifyservice.BookingCancelledNotification) error {
	f.cancellations = append(f.cancellations, n)
	return nil
}

type fakeDispatcher struct {
	events []domain.SlotFreedEvent
	err    error
}

func (f *fakeDispatcher) Enqueue(event domain.SlotFreedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(status domain.BookingStatus) *domain.Booking {
	start := time.Date(2026, 4, 20, 14, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              77,
		BusinessID:      1,
		BranchID:        10,
		StaffID:         7,
		ClientID:        testClientID,
		ServiceID:       5,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          status,
		ServiceName:     "Мужская стрижка",
	}
}

func newTestUseCase(repo *fakeBookingRepo, dispatcher *fakeDispatcher, notify *fakeNotify) *UseCase {
	return NewUseCase(repo, &fakeDirectory{}, notify, dispatcher, &fakeTxManager{}, noopLogger{})
}

func TestExecute_ManagerConfirmsBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	dispatcher := &fakeDispatcher{}
	uc := newTestUseCase(repo, dispatcher, &fakeNotify{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    testManagerID,
		Status:    string(domain.StatusConfirmed),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	// подтверждение не освобождает слот
	assert.Empty(t, dispatcher.events)
}

func TestExecute_ClientCancelsOwnBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	dispatcher := &fakeDispatcher{}
	notify := &fakeNotify{}
	uc := newTestUseCase(repo, dispatcher, notify)

	reason := "не смогу прийти"
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    testClientID,
		Status:    string(domain.StatusCancelled),
		Reason:    &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.NotNil(t, resp.CancelledAt)

	// отмена эмитит событие освобождения слота и уведомление
	require.Len(t, dispatcher.events, 1)
	event := dispatcher.events[0]
	assert.Equal(t, int64(77), event.BookingID)
	assert.Equal(t, int64(7), event.StaffID)
	assert.NotEmpty(t, event.EventID)

	require.Len(t, notify.cancellations, 1)
	assert.Equal(t, &reason, notify.cancellations[0].Reason)
}

func TestExecute_ClientCannotConfirm(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(repo, &fakeDispatcher{}, &fakeNotify{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    testClientID,
		Status:    string(domain.StatusConfirmed),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_StrangerCannotCancel(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(repo, &fakeDispatcher{}, &fakeNotify{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    testOtherID,
		Status:    string(domain.StatusCancelled),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_SameStatusTransitionRejected(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(repo, &fakeDispatcher{}, &fakeNotify{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    testManagerID,
		Status:    string(domain.StatusConfirmed),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_TerminalStatusRejectsTransitions(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		repo := &fakeBookingRepo{booking: testBooking(status)}
		uc := newTestUseCase(repo, &fakeDispatcher{}, &fakeNotify{})

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 77,
			UserID:    testManagerID,
			Status:    string(domain.StatusConfirmed),
		})
		assert.ErrorIs(t, err, ErrInvalidTransition, "terminal status %s", status)
	}
}

func TestExecute_ReasonOnlyForCancellation(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(repo, &fakeDispatcher{}, &fakeNotify{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    testManagerID,
		Status:    string(domain.StatusConfirmed),
		Reason:    ptr.Ptr("причина не к месту"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EnqueueFailureDoesNotFailCancellation(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	dispatcher := &fakeDispatcher{err: assert.AnError}
	uc := newTestUseCase(repo, dispatcher, &fakeNotify{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 77,
		UserID:    testClientID,
		Status:    string(domain.StatusCancelled),
	})
	// отмена уже закоммичена, потеря события каскада ее не откатывает
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}
