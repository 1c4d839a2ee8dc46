// bingo-bot joins a game over the websocket endpoint and logs everything the
// server sends. When DRAW_EVERY is set it also requests a field draw on that
// interval, which only works when the token belongs to the game's author.
package main

import (
	"encoding/json"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type event struct {
	Type   string          `json:"type"`
	GameID string          `json:"id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

func main() {
	wsURL := getenv("WS_URL", "ws://localhost:8080/ws")
	token := os.Getenv("ACCESS_TOKEN")
	gameID := os.Getenv("GAME_ID")
	if token == "" || gameID == "" {
		log.Fatal("ACCESS_TOKEN and GAME_ID must be set")
	}

	u, err := url.Parse(wsURL)
	if err != nil {
		log.Fatal(err)
	}
	q := u.Query()
	q.Set("accessToken", token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	send(conn, event{Type: "JOIN_GAME", GameID: gameID})

	if every := os.Getenv("DRAW_EVERY"); every != "" {
		d, err := time.ParseDuration(every)
		if err != nil {
			log.Fatalf("DRAW_EVERY: %v", err)
		}
		go func() {
			for range time.Tick(d) {
				send(conn, event{Type: "DRAW_FIELD", GameID: gameID})
			}
		}()
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("read: %v", err)
			return
		}
		var e event
		if err := json.Unmarshal(data, &e); err != nil {
			log.Printf("unparseable frame: %s", data)
			continue
		}
		log.Printf("<- %s %s", e.Type, e.Data)
	}
}

func send(conn *websocket.Conn, e event) {
	payload, err := json.Marshal(e)
	if err != nil {
		log.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Fatalf("write: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
