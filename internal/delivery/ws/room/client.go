package ws_room

import (
	"github.com/gorilla/websocket"
)

type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	send          chan Event
	roomCode      string
	participantID string
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		var action Action
		if err := c.conn.ReadJSON(&action); err != nil {
			break
		}
		c.hub.handleAction(c, action)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			break
		}
	}
}
