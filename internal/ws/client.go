package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"bingo-server/internal/game"
)

const sendBufferSize = 16

// wireConn is the slice of *websocket.Conn the client needs. Tests swap in
// an in-memory implementation.
type wireConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one live connection with the identity established at handshake.
// Writes go through a buffered channel drained by a single writer goroutine,
// so one slow receiver fills its own buffer instead of stalling whoever is
// broadcasting.
type Client struct {
	conn   wireConn
	player game.Player

	send      chan []byte
	closed    atomic.Bool
	closeOnce sync.Once
}

func newClient(conn wireConn, player game.Player) *Client {
	return &Client{
		conn:   conn,
		player: player,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) writeLoop() {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// Send serializes {type, data} and queues it for the writer goroutine.
// Closed clients and full buffers drop the frame.
func (c *Client) Send(t EventType, data any) {
	if c.closed.Load() {
		return
	}
	msg, err := json.Marshal(outboundEvent{Type: t, Data: data})
	if err != nil {
		return
	}
	defer func() {
		// the send channel may close while a broadcast is in flight
		_ = recover()
	}()
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.send)
		_ = c.conn.Close()
	})
}
