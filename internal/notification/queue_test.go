package notification

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
)

func TestDrainCadence(t *testing.T) {
	var dispatched []string
	q := NewDeliveryQueue(16, time.Second, 1, func(m models.EmailMessage) {
		dispatched = append(dispatched, m.Subject)
	}, logging.NewNop())

	for i := 1; i <= 5; i++ {
		q.Enqueue(models.EmailMessage{Subject: fmt.Sprintf("msg-%d", i)})
	}

	// One message per tick, in arrival order.
	for tick := 1; tick <= 5; tick++ {
		q.drainOnce()
		assert.Len(t, dispatched, tick)
	}
	assert.Equal(t, []string{"msg-1", "msg-2", "msg-3", "msg-4", "msg-5"}, dispatched)
	assert.Zero(t, q.Pending())

	// Further ticks on an empty backlog dispatch nothing.
	q.drainOnce()
	assert.Len(t, dispatched, 5)
}

func TestBatchDrain(t *testing.T) {
	var dispatched int
	q := NewDeliveryQueue(16, time.Second, 3, func(models.EmailMessage) {
		dispatched++
	}, logging.NewNop())

	for i := 0; i < 5; i++ {
		q.Enqueue(models.EmailMessage{})
	}

	q.drainOnce()
	assert.Equal(t, 3, dispatched)
	q.drainOnce()
	assert.Equal(t, 5, dispatched)
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	q := NewDeliveryQueue(2, time.Second, 1, func(models.EmailMessage) {}, logging.NewNop())

	q.Enqueue(models.EmailMessage{Subject: "a"})
	q.Enqueue(models.EmailMessage{Subject: "b"})
	q.Enqueue(models.EmailMessage{Subject: "c"}) // dropped, never blocks

	assert.Equal(t, 2, q.Pending())
}

func TestStartStop(t *testing.T) {
	done := make(chan struct{})
	q := NewDeliveryQueue(4, 10*time.Millisecond, 1, func(models.EmailMessage) {
		close(done)
	}, logging.NewNop())

	q.Start()
	q.Enqueue(models.EmailMessage{})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not dispatched by the drain loop")
	}
	q.Stop()
}
