package ws

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"bingo-server/internal/auth"
	"bingo-server/internal/game"
	"bingo-server/internal/store"
)

const persistTimeout = 5 * time.Second

var (
	connectionsOpen  = expvar.NewInt("ws_connections_open")
	eventsDispatched = expvar.NewInt("ws_events_dispatched_total")
	framesDropped    = expvar.NewInt("ws_frames_dropped_total")
	broadcastsTotal  = expvar.NewInt("ws_broadcasts_total")
)

// Store is the persistence contract the session core consumes. The concrete
// Postgres store satisfies it; the core never performs read-modify-write
// without fetching the latest document first.
type Store interface {
	GetUser(ctx context.Context, id string) (*store.User, error)
	GetGame(ctx context.Context, id string) (*game.Game, error)
	UpdateGameFields(ctx context.Context, id string, fields []game.Field) error
	UpdateGamePhase(ctx context.Context, id string, phase game.Phase) error
	UpdateGamePodium(ctx context.Context, id string, podium []game.PodiumEntry) error
}

// Server coordinates game sessions: it authenticates the handshake, runs one
// reader goroutine per connection, mutates the registry, calls the store and
// fans results out to the session.
type Server struct {
	store    Store
	tokens   *auth.Tokens
	registry *Registry
	upgrader websocket.Upgrader
}

func NewServer(st Store, tokens *auth.Tokens) *Server {
	return &Server{
		store:    st,
		tokens:   tokens,
		registry: NewRegistry(),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// HandleWS upgrades one connection. Identity comes from the accessToken
// query parameter and is fixed for the connection's lifetime.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	claims, err := s.tokens.Verify(r.URL.Query().Get("accessToken"))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	u, err := s.store.GetUser(r.Context(), claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal_error", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := newClient(conn, game.Player{ID: u.ID, Name: u.Name})
	connectionsOpen.Add(1)
	log.Info().Str("user_id", u.ID).Msg("ws connected")

	go client.writeLoop()
	s.readLoop(client)
}

// readLoop drives one connection until transport close or a fatal read
// error, then leaves every joined session exactly once.
func (s *Server) readLoop(c *Client) {
	defer func() {
		s.disconnect(c)
		connectionsOpen.Add(-1)
		log.Info().Str("user_id", c.player.ID).Msg("ws disconnected")
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(context.Background(), c, msg)
	}
}

func (s *Server) dispatch(ctx context.Context, c *Client, raw []byte) {
	var ev inboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		framesDropped.Add(1)
		log.Debug().Str("user_id", c.player.ID).Msg("undecodable frame dropped")
		return
	}
	if !clientEvents[ev.Type] {
		framesDropped.Add(1)
		log.Debug().Str("user_id", c.player.ID).Str("type", string(ev.Type)).Msg("unknown event type dropped")
		return
	}
	eventsDispatched.Add(1)

	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	g, err := s.store.GetGame(ctx, ev.GameID)
	if errors.Is(err, store.ErrNotFound) {
		c.Send(EventGameNotFound, nil)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("game_id", ev.GameID).Msg("fetch game failed")
		return
	}

	switch ev.Type {
	case EventJoinGame:
		s.handleJoin(c, g)
	case EventDrawField:
		if !g.IsAuthor(c.player.ID) {
			c.Send(EventUnauthorized, nil)
			return
		}
		s.handleDraw(ctx, c, g)
	case EventCloseGame:
		if !g.IsAuthor(c.player.ID) {
			c.Send(EventUnauthorized, nil)
			return
		}
		s.handlePhase(ctx, g, game.PhaseFinished, EventGameClosed)
	case EventStartGame:
		if !g.IsAuthor(c.player.ID) {
			c.Send(EventUnauthorized, nil)
			return
		}
		s.handlePhase(ctx, g, game.PhasePlaying, EventGameStarted)
	case EventOnWin:
		s.handleWin(ctx, c, g)
	}
}

func (s *Server) handleJoin(c *Client, g *game.Game) {
	players, others := s.registry.Join(g.ID, c)
	c.Send(EventGameJoined, playersPayload{Players: players})
	for _, o := range others {
		o.Send(EventPlayerJoined, playersPayload{Players: players})
	}
	log.Info().Str("game_id", g.ID).Str("user_id", c.player.ID).Msg("player joined")
}

func (s *Server) handleDraw(ctx context.Context, c *Client, g *game.Game) {
	drawn, fields, err := game.Draw(g.Fields)
	if errors.Is(err, game.ErrNoFieldsRemaining) {
		c.Send(EventNoMoreFields, nil)
		return
	}
	if err := s.persist(ctx, func(ctx context.Context) error {
		return s.store.UpdateGameFields(ctx, g.ID, fields)
	}); err != nil {
		log.Error().Err(err).Str("game_id", g.ID).Msg("persist drawn field failed")
		return
	}
	s.broadcast(g.ID, EventNewFieldDrawn, fieldPayload{Field: drawn})
}

func (s *Server) handlePhase(ctx context.Context, g *game.Game, phase game.Phase, announce EventType) {
	if err := s.persist(ctx, func(ctx context.Context) error {
		return s.store.UpdateGamePhase(ctx, g.ID, phase)
	}); err != nil {
		log.Error().Err(err).Str("game_id", g.ID).Str("phase", string(phase)).Msg("persist phase failed")
		return
	}
	s.broadcast(g.ID, announce, nil)
}

func (s *Server) handleWin(ctx context.Context, c *Client, g *game.Game) {
	entry, podium, ok := game.RecordWin(g, c.player)
	if !ok {
		// ineligible or already on the podium; dropped without a reply
		return
	}
	if err := s.persist(ctx, func(ctx context.Context) error {
		return s.store.UpdateGamePodium(ctx, g.ID, podium)
	}); err != nil {
		log.Error().Err(err).Str("game_id", g.ID).Str("user_id", c.player.ID).Msg("persist podium failed")
		return
	}
	s.broadcast(g.ID, EventNewWinner, winnerPayload{Player: entry.Name, Placement: entry.Placement})
}

// persist runs one store update, retrying once unless the context is
// already done. Callers log the final error; a failed update means the
// triggering event gets no confirmation broadcast.
func (s *Server) persist(ctx context.Context, op func(context.Context) error) error {
	err := op(ctx)
	if err == nil || ctx.Err() != nil {
		return err
	}
	return op(ctx)
}

func (s *Server) broadcast(gameID string, t EventType, data any) {
	broadcastsTotal.Add(1)
	for _, cl := range s.registry.Connections(gameID) {
		cl.Send(t, data)
	}
}

func (s *Server) disconnect(c *Client) {
	removed := s.registry.Leave(c)
	c.shutdown()
	for gameID, players := range removed {
		s.broadcast(gameID, EventPlayerLeft, playersPayload{Players: players})
	}
}
