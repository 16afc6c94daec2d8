package ws

import (
	"encoding/json"
	"sync"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/pkg/logger"
)

// Event types pushed to the admin dashboard
const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
)

// OrderEvent is the wire format of a dashboard notification
type OrderEvent struct {
	Type    string       `json:"type"`
	OrderID string       `json:"order_id"`
	Order   *model.Order `json:"order"`
}

// Hub manages admin dashboard connections. Every event is broadcast to all
// connected sessions; an admin may have several open at once.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes register, unregister and broadcast events. Call in a
// goroutine once at startup.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Dashboard client connected", map[string]interface{}{
				"admin_id":       client.AdminID,
				"total_sessions": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Dashboard client disconnected", map[string]interface{}{
				"admin_id":       client.AdminID,
				"total_sessions": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Send buffer full - drop the session asynchronously
					go h.Unregister(client)
					logger.Warn("Dashboard client send buffer full, disconnecting", map[string]interface{}{
						"admin_id": client.AdminID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SessionCount returns the number of connected dashboard sessions
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) publish(event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, nil)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		// Dashboard feed is best effort, dropping is fine
		logger.Warn("Broadcast channel full, order event dropped", map[string]interface{}{
			"order_id": event.OrderID,
		})
	}
}

// OrderCreated pushes a new-order event to every dashboard session
func (h *Hub) OrderCreated(order *model.Order) {
	h.publish(OrderEvent{Type: EventOrderCreated, OrderID: order.OrderID, Order: order})
}

// OrderUpdated pushes a status-change event to every dashboard session
func (h *Hub) OrderUpdated(order *model.Order) {
	h.publish(OrderEvent{Type: EventOrderUpdated, OrderID: order.OrderID, Order: order})
}
