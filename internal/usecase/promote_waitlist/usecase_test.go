package promote_waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	waitliststorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifyservice"
)

type fakeWaitlistRepo struct {
	candidates  []*domain.WaitlistEntry
	matchErr    error
	promoteErrs map[int64]error

	promotedIDs []int64
	lastOffer   domain.SlotOfferedEvent
}

func (f *fakeWaitlistRepo) MatchCandidates(_ context.Context, _, _ int64, _ time.Time) ([]*domain.WaitlistEntry, error) {
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	return f.candidates, nil
}

func (f *fakeWaitlistRepo) Promote(_ context.Context, id int64, offer domain.SlotOfferedEvent) (*domain.WaitlistEntry, error) {
	if err, ok := f.promoteErrs[id]; ok {
		return nil, err
	}
	f.promotedIDs = append(f.promotedIDs, id)
	f.lastOffer = offer
	for _, c := range f.candidates {
		if c.ID == id {
			promoted := *c
			promoted.Status = domain.WaitlistStatusOffered
			return &promoted, nil
		}
	}
	return nil, waitliststorage.ErrEntryNotFound
}

type fakeConfigResolver struct {
	config *domain.SchedulingConfig
	err    error
}

func (f *fakeConfigResolver) ResolveConfig(_ context.Context, businessID int64, _, _ *int64) (*domain.SchedulingConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.config != nil {
		return f.config, nil
	}
	return domain.DefaultSchedulingConfig(businessID), nil
}

type fakeNotifyClient struct {
	sent []*notifyservice.SlotOfferedNotification
	err  error
}

func (f *fakeNotifyClient) SendSlotOffered(_ context.Context, n *notifyservice.SlotOfferedNotification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	cascadeResults []string
	promotions     int
}

func (f *fakeMetrics) IncCascadeEvent(result string) {
	f.cascadeResults = append(f.cascadeResults, result)
}

func (f *fakeMetrics) IncWaitlistPromotion() {
	f.promotions++
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

func newTestUseCase(repo *fakeWaitlistRepo, notify *fakeNotifyClient, metrics *fakeMetrics, now time.Time) *UseCase {
	uc := NewUseCase(repo, &fakeConfigResolver{}, notify, &fakeTxManager{}, metrics, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func testEvent(start time.Time) domain.SlotFreedEvent {
	return domain.SlotFreedEvent{
		EventID:    "evt-1",
		BookingID:  100,
		BusinessID: 1,
		BranchID:   10,
		StaffID:    7,
		ServiceID:  5,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		FreedAt:    start.Add(-2 * time.Hour),
	}
}

func waitingEntry(id int64, createdAt time.Time) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:         id,
		BusinessID: 1,
		ClientID:   id * 100,
		ServiceID:  5,
		Status:     domain.WaitlistStatusWaiting,
		CreatedAt:  createdAt,
	}
}

func TestExecute_PromotesOldestCandidate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slotStart := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)

	repo := &fakeWaitlistRepo{
		candidates: []*domain.WaitlistEntry{
			waitingEntry(1, now.Add(-3*time.Hour)),
			waitingEntry(2, now.Add(-2*time.Hour)),
			waitingEntry(3, now.Add(-1*time.Hour)),
		},
	}
	notify := &fakeNotifyClient{}
	metrics := &fakeMetrics{}
	uc := newTestUseCase(repo, notify, metrics, now)

	err := uc.Execute(context.Background(), testEvent(slotStart))
	require.NoError(t, err)

	// репозиторий отдает oldest first, продвигается ровно первый
	require.Equal(t, []int64{1}, repo.promotedIDs)
	assert.Equal(t, int64(1), repo.lastOffer.WaitlistID)
	assert.Equal(t, int64(100), repo.lastOffer.ClientID)
	assert.Equal(t, slotStart, repo.lastOffer.SlotStartTime)
	assert.NotEmpty(t, repo.lastOffer.EventID)

	assert.Equal(t, []string{resultPromoted}, metrics.cascadeResults)
	assert.Equal(t, 1, metrics.promotions)

	require.Len(t, notify.sent, 1)
	assert.Equal(t, int64(1), notify.sent[0].WaitlistID)
}

func TestExecute_OfferExpiryFromConfig(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slotStart := now.Add(48 * time.Hour)

	repo := &fakeWaitlistRepo{candidates: []*domain.WaitlistEntry{waitingEntry(1, now.Add(-time.Hour))}}
	notify := &fakeNotifyClient{}
	uc := NewUseCase(
		repo,
		&fakeConfigResolver{config: &domain.SchedulingConfig{
			BusinessID:              1,
			MinBookingNoticeMinutes: 60,
			AdvanceBookingDays:      30,
			OfferResponseMinutes:    45,
		}},
		notify,
		&fakeTxManager{},
		&fakeMetrics{},
		noopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: now}

	err := uc.Execute(context.Background(), testEvent(slotStart))
	require.NoError(t, err)

	assert.Equal(t, now.Add(45*time.Minute), repo.lastOffer.OfferExpiresAt)
}

func TestExecute_NoCandidatesIsNoop(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeWaitlistRepo{}
	notify := &fakeNotifyClient{}
	metrics := &fakeMetrics{}
	uc := newTestUseCase(repo, notify, metrics, now)

	err := uc.Execute(context.Background(), testEvent(now.Add(24*time.Hour)))
	require.NoError(t, err)

	assert.Empty(t, repo.promotedIDs)
	assert.Empty(t, notify.sent)
	assert.Equal(t, []string{resultNoCandidates}, metrics.cascadeResults)
	assert.Zero(t, metrics.promotions)
}

func TestExecute_SkipsClaimedCandidates(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeWaitlistRepo{
		candidates: []*domain.WaitlistEntry{
			waitingEntry(1, now.Add(-3*time.Hour)),
			waitingEntry(2, now.Add(-2*time.Hour)),
		},
		promoteErrs: map[int64]error{1: waitliststorage.ErrNotWaiting},
	}
	notify := &fakeNotifyClient{}
	metrics := &fakeMetrics{}
	uc := newTestUseCase(repo, notify, metrics, now)

	err := uc.Execute(context.Background(), testEvent(now.Add(24*time.Hour)))
	require.NoError(t, err)

	// первая запись уже забрана конкурентным каскадом, продвигается вторая
	assert.Equal(t, []int64{2}, repo.promotedIDs)
	assert.Equal(t, []string{resultPromoted}, metrics.cascadeResults)
}

func TestExecute_MatchFailureReported(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeWaitlistRepo{matchErr: errors.New("connection reset")}
	notify := &fakeNotifyClient{}
	metrics := &fakeMetrics{}
	uc := newTestUseCase(repo, notify, metrics, now)

	err := uc.Execute(context.Background(), testEvent(now.Add(24*time.Hour)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{resultFailed}, metrics.cascadeResults)
	assert.Empty(t, notify.sent)
}

func TestExecute_NotificationFailureDoesNotFailPromotion(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeWaitlistRepo{candidates: []*domain.WaitlistEntry{waitingEntry(1, now.Add(-time.Hour))}}
	notify := &fakeNotifyClient{err: errors.New("notify service unavailable")}
	metrics := &fakeMetrics{}
	uc := newTestUseCase(repo, notify, metrics, now)

	err := uc.Execute(context.Background(), testEvent(now.Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.promotedIDs)
	assert.Equal(t, 1, metrics.promotions)
}
