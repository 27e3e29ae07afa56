package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeWaitlistRepo struct {
	created *domain.WaitlistEntry
	listed  []*domain.WaitlistEntry

	lastStatus *domain.WaitlistStatus
}

func (f *fakeWaitlistRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	e := *entry
	e.ID = 321
	e.Status = domain.WaitlistStatusWaiting
	f.created = &e
	return &e, nil
}

func (f *fakeWaitlistRepo) ListByBusiness(_ context.Context, _ int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	f.lastStatus = status
	return f.listed, nil
}

type fakeDirectory struct {
	serviceActive bool
	clientActive  bool
	managerID     int64
}

func (f *fakeDirectory) GetBusiness(_ context.Context, businessID int64) (*directoryservice.Business, error) {
	return &directoryservice.Business{
		ID:         businessID,
		Name:       "Барбершоп",
		ManagerIDs: []int64{f.managerID},
	}, nil
}

func (f *fakeDirectory) GetService(_ context.Context, businessID, serviceID int64) (*directoryservice.Service, error) {
	return &directoryservice.Service{
		ID:              serviceID,
		BusinessID:      businessID,
		Name:            "Стрижка",
		DurationMinutes: 60,
		Active:          f.serviceActive,
	}, nil
}

func (f *fakeDirectory) GetClient(_ context.Context, clientID int64) (*directoryservice.ClientProfile, error) {
	return &directoryservice.ClientProfile{ID: clientID, Active: f.clientActive}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestJoin_CreatesWaitingEntry(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	svc := NewService(repo, &fakeDirectory{serviceActive: true, clientActive: true, managerID: 42}, noopLogger{})

	entry, err := svc.Join(context.Background(), JoinRequest{
		BusinessID: 1,
		ClientID:   500,
		ServiceID:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.WaitlistStatusWaiting, entry.Status)
	assert.Nil(t, entry.PreferredDate)
	assert.Nil(t, entry.OfferStartTime)
}

func TestJoin_NormalizesPreferredDateToUTCMidnight(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	svc := NewService(repo, &fakeDirectory{serviceActive: true, clientActive: true}, noopLogger{})

	msk := time.FixedZone("MSK", 3*60*60)
	preferred := time.Date(2026, 5, 14, 18, 45, 12, 0, msk)

	entry, err := svc.Join(context.Background(), JoinRequest{
		BusinessID:    1,
		ClientID:      500,
		ServiceID:     5,
		PreferredDate: &preferred,
	})
	require.NoError(t, err)

	require.NotNil(t, entry.PreferredDate)
	assert.Equal(t, time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC), *entry.PreferredDate)
}

func TestJoin_InactiveServiceRejected(t *testing.T) {
	svc := NewService(&fakeWaitlistRepo{}, &fakeDirectory{serviceActive: false, clientActive: true}, noopLogger{})

	_, err := svc.Join(context.Background(), JoinRequest{BusinessID: 1, ClientID: 500, ServiceID: 5})
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestJoin_InactiveClientRejected(t *testing.T) {
	svc := NewService(&fakeWaitlistRepo{}, &fakeDirectory{serviceActive: true, clientActive: false}, noopLogger{})

	_, err := svc.Join(context.Background(), JoinRequest{BusinessID: 1, ClientID: 500, ServiceID: 5})
	assert.ErrorIs(t, err, ErrClientInactive)
}

func TestListForBusiness_ManagerOnly(t *testing.T) {
	repo := &fakeWaitlistRepo{listed: []*domain.WaitlistEntry{{ID: 1}, {ID: 2}}}
	svc := NewService(repo, &fakeDirectory{managerID: 42}, noopLogger{})

	entries, err := svc.ListForBusiness(context.Background(), 1, 42, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.ListForBusiness(context.Background(), 1, 999, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListForBusiness_StatusFilterPassedThrough(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	svc := NewService(repo, &fakeDirectory{managerID: 42}, noopLogger{})

	status := ptr.Ptr(domain.WaitlistStatusOffered)
	_, err := svc.ListForBusiness(context.Background(), 1, 42, status)
	require.NoError(t, err)
	assert.Equal(t, status, repo.lastStatus)
}
