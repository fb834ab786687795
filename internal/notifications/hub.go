package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventCostsUpdated    = "costs_updated"
	EventProjectsUpdated = "projects_updated"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub раздает события дашборда SSE-подписчикам. Изменения общих
// реестров затрат рассылаются всем, изменения проектов только их владельцу.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]uuid.UUID
}

// NewHub создает хаб для SSE-подписок.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]uuid.UUID),
	}
}

// Subscribe подписывает пользователя на события и возвращает канал и функцию отписки.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	h.subscribers[ch] = userID
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, ok := h.subscribers[ch]; !ok {
			return
		}
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Broadcast отправляет событие всем подписчикам.
func (h *Hub) Broadcast(event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		send(ch, event)
	}
}

// Publish отправляет событие подписчикам конкретного пользователя.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch, owner := range h.subscribers {
		if owner == userID {
			send(ch, event)
		}
	}
}

// Медленный подписчик теряет событие вместо блокировки хаба.
func send(ch chan Event, event Event) {
	select {
	case ch <- event:
	default:
	}
}
