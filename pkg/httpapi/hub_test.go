package httpapi

import "testing"

func TestBroadcast_NoClientsDoesNotPanic(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(map[string]string{"status": "ok"})
}

func TestNewHub_StartsEmpty(t *testing.T) {
	hub := NewHub()
	if len(hub.clients) != 0 {
		t.Errorf("expected no clients on a fresh hub, got %d", len(hub.clients))
	}
}
