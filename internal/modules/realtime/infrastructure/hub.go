package infrastructure

import (
	"log/slog"
	"sync"

	"periodictables/internal/modules/realtime/domain"
)

// Hub fans backend change events out to in-process subscribers. Slow
// subscribers are skipped rather than blocking the stream.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan domain.Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan domain.Event]struct{})}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The unsubscribe function is safe to call more than
// once.
func (h *Hub) Subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, 16)

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

// Broadcast delivers the event to every subscriber with buffer space.
func (h *Hub) Broadcast(event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("event subscriber buffer full", slog.String("entity", string(event.Entity)), slog.String("action", string(event.Action)))
		}
	}
}

// SubscriberCount reports the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
