package event

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeMessageUpserted EventType = "message.upserted"
)

// Event is one message-stream notification. CaseID is empty for unlinked messages.
type Event struct {
	Type   EventType       `json:"type"`
	CaseID string          `json:"case_id,omitempty"`
	Data   json.RawMessage `json:"data"`
}

type Publisher interface {
	Publish(event Event)
}

type Subscriber interface {
	Subscribe(buffer int) (string, <-chan Event, func())
}

// Hub fans events out to in-process subscribers. Publish never blocks:
// a subscriber whose buffer is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subscribers: map[string]chan Event{}}
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a listener. The returned cancel func closes the channel
// and is safe to call more than once.
func (h *Hub) Subscribe(buffer int) (string, <-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	id := uuid.NewString()
	ch := make(chan Event, buffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return id, ch, cancel
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
