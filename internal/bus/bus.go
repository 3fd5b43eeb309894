// Package bus fans daemon events out to in-process subscribers.
package bus

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Bus delivers each published event to every subscription whose namespace
// is a prefix of the event kind. Delivery never blocks the publisher: a
// subscriber with a full buffer misses the event and its drop counter
// grows.
type Bus struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// Subscription is one subscriber's view of the bus.
type Subscription struct {
	// C receives matching events. It is never closed; stop reading after
	// Close.
	C <-chan Event

	ch        chan Event
	namespace string
	dropped   atomic.Uint64
	bus       *Bus
	once      sync.Once
}

func New() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Publish fills a missing id or timestamp and delivers evt.
func (b *Bus) Publish(evt Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		if !strings.HasPrefix(evt.Kind, sub.namespace) {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
			sub.dropped.Add(1)
		}
	}
}

// Subscribe registers interest in kinds starting with namespace ("" for
// everything). buf is the channel capacity.
func (b *Bus) Subscribe(namespace string, buf int) *Subscription {
	ch := make(chan Event, buf)
	sub := &Subscription{C: ch, ch: ch, namespace: namespace, bus: b}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Subscribers returns the number of open subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped is the number of events this subscriber missed.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
	})
}
