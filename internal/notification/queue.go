package notification

import (
	"context"
	"sync"
	"time"

	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
)

// DeliveryQueue is a bounded FIFO backlog of composed emails, drained
// on a fixed timer. Each tick dispatches at most maxPerTick messages,
// so delivery stays paced regardless of how fast alerts arrive. When
// the backlog is full new messages are dropped, not blocked on: the
// reporting path must never wait on the mail transport.
type DeliveryQueue struct {
	backlog    chan models.EmailMessage
	interval   time.Duration
	maxPerTick int
	dispatch   func(models.EmailMessage)
	logger     *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDeliveryQueue(size int, interval time.Duration, maxPerTick int, dispatch func(models.EmailMessage), logger *logging.Logger) *DeliveryQueue {
	if size <= 0 {
		size = 512
	}
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if maxPerTick <= 0 {
		maxPerTick = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DeliveryQueue{
		backlog:    make(chan models.EmailMessage, size),
		interval:   interval,
		maxPerTick: maxPerTick,
		dispatch:   dispatch,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Enqueue appends a message to the backlog. Never blocks; a full
// backlog drops the message with an error log.
func (q *DeliveryQueue) Enqueue(msg models.EmailMessage) {
	select {
	case q.backlog <- msg:
		q.logger.Debugf("Queued email to %s (backlog %d)", msg.To, len(q.backlog))
	default:
		q.logger.Errorf("Delivery backlog full, dropping email to %s", msg.To)
	}
}

// Start launches the drain loop.
func (q *DeliveryQueue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		ticker := time.NewTicker(q.interval)
		defer ticker.Stop()
		for {
			select {
			case <-q.ctx.Done():
				return
			case <-ticker.C:
				q.drainOnce()
			}
		}
	}()
}

// drainOnce dispatches up to maxPerTick messages in arrival order.
func (q *DeliveryQueue) drainOnce() {
	for i := 0; i < q.maxPerTick; i++ {
		select {
		case msg := <-q.backlog:
			q.dispatch(msg)
		default:
			return
		}
	}
}

// Stop halts the drain loop. Messages still in the backlog are lost;
// there is no drain-on-exit guarantee.
func (q *DeliveryQueue) Stop() {
	q.cancel()
	q.wg.Wait()
}

// Pending reports the current backlog depth.
func (q *DeliveryQueue) Pending() int {
	return len(q.backlog)
}
