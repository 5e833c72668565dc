package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventscape/internal/metrics"
	"github.com/joshua-takyi/eventscape/internal/models"
)

// subscriberBuffer is how many notifications a slow subscriber may fall behind before it starts missing them.
const subscriberBuffer = 16

type Subscriber struct {
	ID string
	C  <-chan *models.ChangeNotification
}

// Broker fans change notifications out to stream subscribers.
type Broker struct {
	lock        sync.RWMutex
	subscribers map[string]chan *models.ChangeNotification
	dropped     uint64
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]chan *models.ChangeNotification),
	}
}

func (b *Broker) Subscribe() Subscriber {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := uuid.NewString()
	ch := make(chan *models.ChangeNotification, subscriberBuffer)
	b.subscribers[id] = ch
	metrics.SSESubscribers.Inc()
	return Subscriber{ID: id, C: ch}
}

// Unsubscribe closes the subscriber's channel. Unknown ids are ignored, so calling it twice is safe.
func (b *Broker) Unsubscribe(id string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return
	}
	close(ch)
	delete(b.subscribers, id)
	metrics.SSESubscribers.Dec()
}

// Publish delivers n to every subscriber without blocking. A subscriber whose buffer is full misses n.
func (b *Broker) Publish(n *models.ChangeNotification) int {
	b.lock.Lock()
	defer b.lock.Unlock()

	delivered := 0
	for _, ch := range b.subscribers {
		select {
		case ch <- n:
			delivered++
		default:
			b.dropped++
		}
	}
	return delivered
}

func (b *Broker) Count() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.subscribers)
}

func (b *Broker) Dropped() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.dropped
}
