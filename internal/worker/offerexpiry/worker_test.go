package offerexpiry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWaitlistRepo struct {
	mu      sync.Mutex
	expired int64
	sweeps  int
}

func (f *fakeWaitlistRepo) ExpireOverdueOffers(_ context.Context, _ time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	return f.expired, nil
}

func (f *fakeWaitlistRepo) sweepCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps
}

type fakeMetrics struct {
	mu    sync.Mutex
	total int
}

func (f *fakeMetrics) IncOffersExpired(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total += n
}

func (f *fakeMetrics) expiredTotal() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestWorker_SweepsPeriodically(t *testing.T) {
	repo := &fakeWaitlistRepo{expired: 2}
	metrics := &fakeMetrics{}
	w := New(repo, metrics, noopLogger{}, 10*time.Millisecond)

	w.Start()
	defer w.Stop()

	require.Eventually(t, func() bool {
		return repo.sweepCount() >= 2
	}, time.Second, 5*time.Millisecond)

	assert.GreaterOrEqual(t, metrics.expiredTotal(), 4)
}

func TestWorker_NoMetricsWhenNothingExpired(t *testing.T) {
	repo := &fakeWaitlistRepo{expired: 0}
	metrics := &fakeMetrics{}
	w := New(repo, metrics, noopLogger{}, 10*time.Millisecond)

	w.Start()
	require.Eventually(t, func() bool {
		return repo.sweepCount() >= 1
	}, time.Second, 5*time.Millisecond)
	w.Stop()

	assert.Zero(t, metrics.expiredTotal())
}

func TestWorker_StopIsIdempotent(t *testing.T) {
	w := New(&fakeWaitlistRepo{}, &fakeMetrics{}, noopLogger{}, 10*time.Millisecond)
	w.Start()
	w.Stop()
	w.Stop()
}
