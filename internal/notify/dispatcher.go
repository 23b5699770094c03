// Package notify delivers workflow notifications to their recipients.
// Notifications are persisted for in-app retrieval and, when a NATS
// connection is configured, pushed to a per-user subject for live
// consumers.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/metrics"
)

// SubjectPrefix is the NATS subject prefix for per-user notification
// streams. The full subject is SubjectPrefix + userID.
const SubjectPrefix = "printflow.notifications."

// SubjectFor returns the NATS subject carrying a user's notifications.
func SubjectFor(userID string) string {
	return SubjectPrefix + userID
}

// Store persists notifications for in-app retrieval.
type Store interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// Publisher pushes serialized notifications to live subscribers.
// *nats.Conn satisfies this interface.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Dispatcher delivers notifications asynchronously. Enqueue never
// blocks: when the queue is full the notification is dropped and
// counted.
type Dispatcher struct {
	store  Store
	pub    Publisher // nil when live push is disabled
	logger *slog.Logger

	queue chan *domain.Notification
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// NewDispatcher creates a dispatcher and starts its delivery worker.
// pub may be nil to disable live push.
func NewDispatcher(store Store, pub Publisher, logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	d := &Dispatcher{
		store:  store,
		pub:    pub,
		logger: logger,
		queue:  make(chan *domain.Notification, queueSize),
		done:   make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue hands a notification to the delivery worker. It never blocks;
// if the queue is full the notification is dropped.
func (d *Dispatcher) Enqueue(n *domain.Notification) {
	select {
	case d.queue <- n:
		metrics.NotificationsEnqueued.WithLabelValues(n.Template).Inc()
	default:
		metrics.NotificationsDropped.Inc()
		d.logger.Warn("notification queue full, dropping",
			"user_id", n.UserID,
			"template", n.Template,
		)
	}
}

// Close stops the worker after draining already-enqueued notifications.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case n := <-d.queue:
			d.deliver(n)
		case <-d.done:
			// Drain what is already queued before exiting.
			for {
				select {
				case n := <-d.queue:
					d.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(n *domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stored, err := d.store.Create(ctx, n)
	if err != nil {
		d.logger.Error("failed to persist notification",
			"user_id", n.UserID,
			"template", n.Template,
			"error", err,
		)
		return
	}

	if d.pub == nil {
		return
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		d.logger.Error("failed to marshal notification", "error", err)
		return
	}
	if err := d.pub.Publish(SubjectFor(stored.UserID), payload); err != nil {
		d.logger.Error("failed to publish notification",
			"subject", SubjectFor(stored.UserID),
			"error", err,
		)
	}
}
