package events

import "sync"

// subscriberBuffer bounds how far a slow consumer may fall behind
// before events are dropped for it.
const subscriberBuffer = 16

// Hub is the in-process Bus implementation: a mutex-guarded subscriber
// set with buffered per-subscriber channels. Delivery is best effort —
// a subscriber that does not drain its channel loses events, and there
// is no persistence or replay. Consumers reconcile by re-fetching.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Publish fans the event out to every current subscriber without
// blocking. A full subscriber channel drops the event for that
// subscriber only.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a new consumer and returns its channel together
// with a cancel function. Cancel is idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// SubscriberCount reports how many consumers are currently attached.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
