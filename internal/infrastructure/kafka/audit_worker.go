package kafka

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/jitter"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

const (
	retryBaseDelay = 200 * time.Millisecond
	retryMaxDelay  = 5 * time.Second
	drainTimeout   = 5 * time.Second
)

type EventWriter interface {
	WriteEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditWorker публикует события аудита в фоне через буферизированную очередь.
// Publish никогда не блокирует обработку запроса: при переполнении очереди событие отбрасывается.
type AuditWorker struct {
	writer     EventWriter
	logger     logger.Logger
	queue      chan *domain.AuditEvent
	maxRetries int
	stop       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

func NewAuditWorker(writer EventWriter, logger logger.Logger, queueSize int, maxRetries int) *AuditWorker {
	return &AuditWorker{
		writer:     writer,
		logger:     logger,
		queue:      make(chan *domain.AuditEvent, queueSize),
		maxRetries: maxRetries,
		stop:       make(chan struct{}),
	}
}

func (w *AuditWorker) Publish(event *domain.AuditEvent) {
	select {
	case w.queue <- event:
	default:
		w.logger.Warnf("%v: dropping event_id=%s resource=%s action=%s",
			e.ErrAuditQueueOverflowed, event.EventID, event.Resource, event.Action)
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Stop останавливает воркер, отправив события, оставшиеся в очереди.
func (w *AuditWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *AuditWorker) run(ctx context.Context) {
	for {
		select {
		case event := <-w.queue:
			w.processEvent(ctx, event)
		case <-w.stop:
			w.drain()
			w.logger.Infof("Audit worker stopped")
			return
		case <-ctx.Done():
			w.drain()
			w.logger.Infof("Audit worker stopped by context cancellation")
			return
		}
	}
}

// drain отправляет оставшиеся события, пока не истечет drainTimeout.
func (w *AuditWorker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-w.queue:
			w.processEvent(ctx, event)
		default:
			return
		}
	}
}

func (w *AuditWorker) processEvent(ctx context.Context, event *domain.AuditEvent) {
	const op = "AuditWorker.processEvent"

	for attempt := 0; ; attempt++ {
		err := w.writer.WriteEvent(ctx, event)
		if err == nil {
			return
		}

		if !isRetryableError(err) {
			w.logger.Errorf(e.Wrap(op, err), "permanent Kafka failure, event_id=%s", event.EventID)
			return
		}
		if attempt+1 >= w.maxRetries {
			w.logger.Errorf(e.Wrap(op, err), "temporary Kafka failure, retries exhausted, event_id=%s", event.EventID)
			return
		}

		select {
		case <-time.After(jitter.ExponentialBackoff(retryBaseDelay, retryMaxDelay, attempt, jitter.DefaultJitter)):
		case <-ctx.Done():
			w.logger.Warnf("audit event dropped on shutdown, event_id=%s", event.EventID)
			return
		}
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"leader not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
