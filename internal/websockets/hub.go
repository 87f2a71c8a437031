package websockets

import (
	"sync"
)

// Hub fans table and order updates out to the staff devices of each
// restaurant. Clients are grouped by restaurant id so one tenant's
// lifecycle traffic never reaches another's devices.
type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	restaurantChannels map[string]map[*Client]bool

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		register:           make(chan *Client),
		unregister:         make(chan *Client),
		clients:            make(map[*Client]bool),
		restaurantChannels: make(map[string]map[*Client]bool),
	}
}

// addClient and removeClient hold h.mu across both maps: broadcasts from
// handler goroutines mutate the same maps, so every touch of h.clients or
// h.restaurantChannels happens under the lock.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, ok := h.restaurantChannels[client.restaurantID]; !ok {
		h.restaurantChannels[client.restaurantID] = make(map[*Client]bool)
	}
	h.restaurantChannels[client.restaurantID][client] = true
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	if clients, ok := h.restaurantChannels[client.restaurantID]; ok {
		delete(clients, client)
	}
}

// BroadcastToRestaurant delivers a message to every connected device of
// one restaurant. Slow consumers are dropped rather than blocking the rest.
func (h *Hub) BroadcastToRestaurant(restaurantID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.restaurantChannels[restaurantID]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				close(client.send)
				delete(clients, client)
				delete(h.clients, client)
			}
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}
