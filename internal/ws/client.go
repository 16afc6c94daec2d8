package ws

import (
	"time"

	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024
)

// Client is one admin dashboard websocket session
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	AdminID uint
	Send    chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, adminID uint) *Client {
	return &Client{
		Hub:     hub,
		Conn:    conn,
		AdminID: adminID,
		Send:    make(chan []byte, 64),
	}
}

// ReadPump drains the connection. The dashboard feed is one-way, incoming
// messages are discarded, but reading is required to process pongs and
// detect closed connections.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("Dashboard websocket read error", err, map[string]interface{}{
					"admin_id": c.AdminID,
				})
			}
			break
		}
	}
}

// WritePump forwards hub events to the connection and keeps it alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("Failed to write dashboard event", err, map[string]interface{}{
					"admin_id": c.AdminID,
				})
				return
			}

			// Flush any queued events as individual frames
			n := len(c.Send)
			for i := 0; i < n; i++ {
				msg := <-c.Send
				if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
