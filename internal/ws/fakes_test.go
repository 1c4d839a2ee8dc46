package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"bingo-server/internal/game"
	"bingo-server/internal/store"
)

type fakeConn struct {
	mu     sync.Mutex
	closed bool
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	return 0, nil, io.EOF
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// fakeStore is an in-memory Store. Updates are applied to the held game so a
// subsequent fetch observes them, the way the real store behaves.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]*store.User
	games       map[string]*game.Game
	updateCalls int
	failUpdates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*store.User{},
		games: map[string]*game.Game{},
	}
}

func (f *fakeStore) addUser(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = &store.User{ID: id, Name: name}
}

func (f *fakeStore) addGame(g *game.Game) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[g.ID] = g
}

func (f *fakeStore) GetUser(_ context.Context, id string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetGame(_ context.Context, id string) (*game.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *g
	cp.Fields = append([]game.Field(nil), g.Fields...)
	cp.Winners = append([]string(nil), g.Winners...)
	cp.Podium = append([]game.PodiumEntry(nil), g.Podium...)
	return &cp, nil
}

func (f *fakeStore) UpdateGameFields(_ context.Context, id string, fields []game.Field) error {
	return f.update(id, func(g *game.Game) {
		g.Fields = append([]game.Field(nil), fields...)
	})
}

func (f *fakeStore) UpdateGamePhase(_ context.Context, id string, phase game.Phase) error {
	return f.update(id, func(g *game.Game) {
		g.Phase = phase
	})
}

func (f *fakeStore) UpdateGamePodium(_ context.Context, id string, podium []game.PodiumEntry) error {
	return f.update(id, func(g *game.Game) {
		g.Podium = append([]game.PodiumEntry(nil), podium...)
	})
}

func (f *fakeStore) update(id string, apply func(*game.Game)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.failUpdates > 0 {
		f.failUpdates--
		return errors.New("db down")
	}
	g, ok := f.games[id]
	if !ok {
		return store.ErrNotFound
	}
	apply(g)
	return nil
}

func (f *fakeStore) updates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCalls
}

func (f *fakeStore) game(t *testing.T, id string) *game.Game {
	t.Helper()
	g, err := f.GetGame(context.Background(), id)
	if err != nil {
		t.Fatalf("fake store missing game %q: %v", id, err)
	}
	return g
}

func recvEvent(t *testing.T, c *Client) outboundEvent {
	t.Helper()
	select {
	case msg := <-c.send:
		var ev outboundEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("decode outbound event: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return outboundEvent{}
}

func expectNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected event: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func decodePlayers(t *testing.T, ev outboundEvent) []game.Player {
	t.Helper()
	b, err := json.Marshal(ev.Data)
	if err != nil {
		t.Fatalf("re-marshal payload: %v", err)
	}
	var pp playersPayload
	if err := json.Unmarshal(b, &pp); err != nil {
		t.Fatalf("decode players payload: %v", err)
	}
	return pp.Players
}

func decodeField(t *testing.T, ev outboundEvent) game.Field {
	t.Helper()
	b, err := json.Marshal(ev.Data)
	if err != nil {
		t.Fatalf("re-marshal payload: %v", err)
	}
	var fp fieldPayload
	if err := json.Unmarshal(b, &fp); err != nil {
		t.Fatalf("decode field payload: %v", err)
	}
	return fp.Field
}

func decodeWinner(t *testing.T, ev outboundEvent) winnerPayload {
	t.Helper()
	b, err := json.Marshal(ev.Data)
	if err != nil {
		t.Fatalf("re-marshal payload: %v", err)
	}
	var wp winnerPayload
	if err := json.Unmarshal(b, &wp); err != nil {
		t.Fatalf("decode winner payload: %v", err)
	}
	return wp
}
