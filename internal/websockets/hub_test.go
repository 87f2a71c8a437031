package websockets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsPerRestaurant(t *testing.T) {
	hub := NewHub()

	a1 := NewClient(hub, nil, "u1", "rest-a")
	a2 := NewClient(hub, nil, "u2", "rest-a")
	b := NewClient(hub, nil, "u3", "rest-b")
	hub.addClient(a1)
	hub.addClient(a2)
	hub.addClient(b)

	hub.BroadcastToRestaurant("rest-a", []byte("table update"))

	assert.Equal(t, []byte("table update"), <-a1.send)
	assert.Equal(t, []byte("table update"), <-a2.send)
	assert.Empty(t, b.send, "other tenants never see the message")
}

func TestHubDropsSlowConsumers(t *testing.T) {
	hub := NewHub()

	slow := &Client{hub: hub, send: make(chan []byte), restaurantID: "rest-a"}
	hub.addClient(slow)

	hub.BroadcastToRestaurant("rest-a", []byte("one"))
	hub.BroadcastToRestaurant("rest-a", []byte("two"))

	_, open := <-slow.send
	assert.False(t, open, "a consumer with a full buffer is dropped and its channel closed")
	assert.NotContains(t, hub.clients, slow)
}

func TestHubConcurrentRegistrationAndBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			hub.BroadcastToRestaurant("rest-a", []byte("x"))
		}
	}()

	for i := 0; i < 500; i++ {
		client := &Client{hub: hub, send: make(chan []byte, 1), restaurantID: "rest-a"}
		hub.register <- client
		hub.unregister <- client
	}
	<-done

	// Unregistering a client the broadcast path already dropped is a no-op.
	stale := &Client{hub: hub, send: make(chan []byte), restaurantID: "rest-a"}
	hub.register <- stale
	hub.BroadcastToRestaurant("rest-a", []byte("x"))
	hub.BroadcastToRestaurant("rest-a", []byte("x"))
	require.NotPanics(t, func() { hub.removeClient(stale) })
}
