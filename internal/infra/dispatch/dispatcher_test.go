package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []domain.SlotFreedEvent
	block  chan struct{} // если задан, Execute ждет закрытия
}

func (h *recordingHandler) Execute(_ context.Context, event domain.SlotFreedEvent) error {
	if h.block != nil {
		<-h.block
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) handled() []domain.SlotFreedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.SlotFreedEvent, len(h.events))
	copy(out, h.events)
	return out
}

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (f *fakeMetrics) IncCascadeEvent(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func event(id string) domain.SlotFreedEvent {
	return domain.SlotFreedEvent{EventID: id, BookingID: 1, BusinessID: 1, ServiceID: 5}
}

func TestDispatcher_DeliversEventsInOrder(t *testing.T) {
	handler := &recordingHandler{}
	d := New(handler, &fakeMetrics{}, noopLogger{})

	require.NoError(t, d.Enqueue(event("a")))
	require.NoError(t, d.Enqueue(event("b")))
	require.NoError(t, d.Enqueue(event("c")))

	d.Stop()

	handled := handler.handled()
	require.Len(t, handled, 3)
	assert.Equal(t, "a", handled[0].EventID)
	assert.Equal(t, "b", handled[1].EventID)
	assert.Equal(t, "c", handled[2].EventID)
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	handler := &recordingHandler{block: make(chan struct{})}
	d := New(handler, &fakeMetrics{}, noopLogger{}, WithQueueSize(8))

	// worker висит на первом событии, остальные копятся в очереди
	require.NoError(t, d.Enqueue(event("a")))
	require.NoError(t, d.Enqueue(event("b")))
	require.NoError(t, d.Enqueue(event("c")))

	close(handler.block)
	d.Stop()

	assert.Len(t, handler.handled(), 3)
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	handler := &recordingHandler{}
	metrics := &fakeMetrics{}
	d := New(handler, metrics, noopLogger{})
	d.Stop()

	err := d.Enqueue(event("late"))
	assert.ErrorIs(t, err, ErrStopped)
	assert.Contains(t, metrics.results, "dropped")
}

func TestDispatcher_FullQueueDropsEvent(t *testing.T) {
	blocker := make(chan struct{})
	handler := &recordingHandler{block: blocker}
	metrics := &fakeMetrics{}
	d := New(handler, metrics, noopLogger{},
		WithQueueSize(1),
		WithEnqueueTimeout(20*time.Millisecond),
	)

	// первое событие уходит worker'у и блокируется, второе занимает очередь
	require.NoError(t, d.Enqueue(event("a")))
	require.Eventually(t, func() bool {
		select {
		case d.queue <- event("b"):
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	err := d.Enqueue(event("c"))
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Contains(t, metrics.results, "dropped")

	close(blocker)
	d.Stop()
}
