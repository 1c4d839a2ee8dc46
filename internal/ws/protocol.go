package ws

import (
	"encoding/json"

	"bingo-server/internal/game"
)

type EventType string

// Client-originated events.
const (
	EventJoinGame  EventType = "JOIN_GAME"
	EventDrawField EventType = "DRAW_FIELD"
	EventCloseGame EventType = "CLOSE_GAME"
	EventStartGame EventType = "START_GAME"
	EventOnWin     EventType = "ON_WIN"
)

// Server-originated events.
const (
	EventGameJoined    EventType = "GAME_JOINED"
	EventPlayerJoined  EventType = "PLAYER_JOINED"
	EventPlayerLeft    EventType = "PLAYER_LEFT"
	EventNewFieldDrawn EventType = "NEW_FIELD_DRAWN"
	EventNoMoreFields  EventType = "NO_MORE_FIELDS"
	EventGameClosed    EventType = "GAME_CLOSED"
	EventGameStarted   EventType = "GAME_STARTED"
	EventNewWinner     EventType = "NEW_WINNER"
	EventUnauthorized  EventType = "UNAUTHORIZED"
	EventGameNotFound  EventType = "GAME_NOT_FOUND"
)

var clientEvents = map[EventType]bool{
	EventJoinGame:  true,
	EventDrawField: true,
	EventCloseGame: true,
	EventStartGame: true,
	EventOnWin:     true,
}

// inboundEvent is the envelope clients send. The per-message accessToken is
// accepted for wire compatibility but ignored: identity is fixed at the
// handshake and cannot be swapped mid-connection.
type inboundEvent struct {
	Type        EventType       `json:"type"`
	GameID      string          `json:"id"`
	Data        json.RawMessage `json:"data,omitempty"`
	AccessToken string          `json:"accessToken,omitempty"`
}

type outboundEvent struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

type playersPayload struct {
	Players []game.Player `json:"players"`
}

type fieldPayload struct {
	Field game.Field `json:"field"`
}

type winnerPayload struct {
	Player    string `json:"player"`
	Placement int    `json:"placement"`
}
