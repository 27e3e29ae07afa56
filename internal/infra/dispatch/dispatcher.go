package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ErrQueueFull возвращается, когда очередь каскада переполнена
// и событие не удалось поставить за отведенное время
var ErrQueueFull = errors.New("dispatch: cascade queue is full")

// ErrStopped возвращается при постановке события в остановленный диспетчер
var ErrStopped = errors.New("dispatch: dispatcher is stopped")

const (
	defaultQueueSize      = 64
	defaultEnqueueTimeout = 1500 * time.Millisecond
	handleTimeout         = 30 * time.Second
)

// Handler обработчик события освобождения слота
type Handler interface {
	Execute(ctx context.Context, event domain.SlotFreedEvent) error
}

// MetricsCollector интерфейс счетчиков каскада
type MetricsCollector interface {
	IncCascadeEvent(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher внутрипроцессная очередь каскада продвижения листа ожидания.
// Один worker последовательно обрабатывает события освобождения слотов:
// при пустой очереди продвижение стартует сразу после постановки, что
// с запасом укладывается в полуторасекундную границу.
// Постановка ограничена таймаутом и никогда не блокирует отмену надолго:
// при переполнении событие теряется с логом и метрикой
type Dispatcher struct {
	handler Handler
	metrics MetricsCollector
	log     Logger

	queue          chan domain.SlotFreedEvent
	enqueueTimeout time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Option настройка диспетчера
type Option func(*Dispatcher)

// WithQueueSize задает размер очереди событий
func WithQueueSize(size int) Option {
	return func(d *Dispatcher) {
		d.queue = make(chan domain.SlotFreedEvent, size)
	}
}

// WithEnqueueTimeout задает таймаут постановки события в очередь
func WithEnqueueTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.enqueueTimeout = timeout
	}
}

// New создает диспетчер и запускает его worker
func New(handler Handler, metrics MetricsCollector, log Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handler:        handler,
		metrics:        metrics,
		log:            log,
		queue:          make(chan domain.SlotFreedEvent, defaultQueueSize),
		enqueueTimeout: defaultEnqueueTimeout,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	go d.run()

	return d
}

// Enqueue ставит событие освобождения слота в очередь.
// Блокируется не дольше enqueueTimeout; переполнение не ошибка отмены,
// а потерянное событие каскада
func (d *Dispatcher) Enqueue(event domain.SlotFreedEvent) error {
	select {
	case <-d.stopCh:
		d.metrics.IncCascadeEvent("dropped")
		return ErrStopped
	default:
	}

	timer := time.NewTimer(d.enqueueTimeout)
	defer timer.Stop()

	select {
	case d.queue <- event:
		return nil
	case <-d.stopCh:
		d.metrics.IncCascadeEvent("dropped")
		return ErrStopped
	case <-timer.C:
		d.metrics.IncCascadeEvent("dropped")
		d.log.Error("dispatch: cascade queue full, dropping event %s (booking %d)",
			event.EventID, event.BookingID)
		return ErrQueueFull
	}
}

// Stop останавливает диспетчер, дообработав уже поставленные события
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
	})
	<-d.doneCh
}

// run цикл обработки событий; после сигнала остановки дочитывает очередь
func (d *Dispatcher) run() {
	defer close(d.doneCh)

	for {
		select {
		case event := <-d.queue:
			d.handle(event)
		case <-d.stopCh:
			for {
				select {
				case event := <-d.queue:
					d.handle(event)
				default:
					return
				}
			}
		}
	}
}

// handle обрабатывает одно событие с собственным таймаутом.
// Ошибки каскада только логируются: отмена уже закоммичена
func (d *Dispatcher) handle(event domain.SlotFreedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := d.handler.Execute(ctx, event); err != nil {
		d.log.Error("dispatch: cascade event %s failed: %v", event.EventID, err)
	}
}
