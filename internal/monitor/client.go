package monitor

import (
	"encoding/json"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

const sendBuffer = 256

// Client is one websocket connection following a single player.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	player atomic.Int32
}

// NewClient creates a client following player 1.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	c.player.Store(1)
	return c
}

func (c *Client) Player() int { return int(c.player.Load()) }

func (c *Client) SetPlayer(p int) { c.player.Store(int32(p)) }

// WritePump sends queued messages until the queue is closed.
func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump handles client commands until the connection fails.
func (c *Client) ReadPump(b *Broadcaster) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.logger.Debug("bad monitor message", "error", err)
			continue
		}

		switch msg.Type {
		case "select_player":
			if msg.Player < 1 || msg.Player > 2 {
				c.hub.logger.Debug("invalid player selection", "player", msg.Player)
				continue
			}
			c.SetPlayer(msg.Player)
			b.SendSelected(c, msg.Player)
			b.SendInitialState(c)
		}
	}
}
