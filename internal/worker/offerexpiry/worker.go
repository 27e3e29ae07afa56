package offerexpiry

import (
	"context"
	"sync"
	"time"
)

const defaultInterval = time.Minute

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	ExpireOverdueOffers(ctx context.Context, now time.Time) (int64, error)
}

// MetricsCollector интерфейс счетчика просроченных предложений
type MetricsCollector interface {
	IncOffersExpired(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновый процесс просрочки предложений листа ожидания.
// Периодически переводит offered-записи с истекшим offer_expires_at
// в терминальный статус expired: клиент не ответил вовремя и при
// желании вступает в лист ожидания заново
type Worker struct {
	waitlistRepo WaitlistRepository
	metrics      MetricsCollector
	log          Logger
	interval     time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New создает worker просрочки предложений
func New(waitlistRepo WaitlistRepository, metrics MetricsCollector, log Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		waitlistRepo: waitlistRepo,
		metrics:      metrics,
		log:          log,
		interval:     interval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start запускает периодическую просрочку в отдельной горутине
func (w *Worker) Start() {
	go w.run()
}

// Stop останавливает worker и дожидается завершения текущего прохода
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.doneCh
}

// run цикл просрочки по тикеру
func (w *Worker) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-w.stopCh:
			return
		}
	}
}

// sweep один проход просрочки
func (w *Worker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	expired, err := w.waitlistRepo.ExpireOverdueOffers(ctx, time.Now())
	if err != nil {
		w.log.Error("offerexpiry: sweep failed: %v", err)
		return
	}

	if expired > 0 {
		w.metrics.IncOffersExpired(int(expired))
		w.log.Info("offerexpiry: expired %d overdue offers", expired)
	}
}
