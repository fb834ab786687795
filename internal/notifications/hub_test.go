package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestHubBroadcast проверяет доставку общего события всем подписчикам.
func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	first, unsubFirst := hub.Subscribe(uuid.New())
	defer unsubFirst()
	second, unsubSecond := hub.Subscribe(uuid.New())
	defer unsubSecond()

	hub.Broadcast(Event{Type: EventCostsUpdated})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case event := <-ch:
			if event.Type != EventCostsUpdated {
				t.Fatalf("expected event type %s, got %s", EventCostsUpdated, event.Type)
			}
			if event.Timestamp.IsZero() {
				t.Fatal("expected timestamp to be set")
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatal("expected event to be delivered")
		}
	}
}

// TestHubPublishScopedToUser проверяет, что пользовательские события не уходят чужим подписчикам.
func TestHubPublishScopedToUser(t *testing.T) {
	hub := NewHub()
	owner := uuid.New()

	ownerCh, unsubOwner := hub.Subscribe(owner)
	defer unsubOwner()
	otherCh, unsubOther := hub.Subscribe(uuid.New())
	defer unsubOther()

	hub.Publish(owner, Event{Type: EventProjectsUpdated})

	select {
	case event := <-ownerCh:
		if event.Type != EventProjectsUpdated {
			t.Fatalf("expected event type %s, got %s", EventProjectsUpdated, event.Type)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event for owner")
	}

	select {
	case event := <-otherCh:
		t.Fatalf("unexpected event for other subscriber: %s", event.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe(uuid.New())
	unsubscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}
