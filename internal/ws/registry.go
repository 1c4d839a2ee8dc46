package ws

import (
	"sort"
	"sync"

	"bingo-server/internal/game"
)

// Registry owns the runtime session state: which connections and players
// belong to which game. It is the only shared mutable state in the package
// and every access goes through the mutex; callers only ever see snapshots.
//
// Membership is keyed by (game id, connection), with the player attached to
// the connection. The player list of a game is derived: the set of players
// that still hold at least one live connection there. That keeps a player
// with several tabs open present until the last one goes away.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]map[*Client]game.Player
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]map[*Client]game.Player{}}
}

// Join adds the connection to the game's session, creating the session on
// first join. It returns the updated player list and the other connections
// that were already in the session, both computed under the same lock hold
// as the insert so no caller sees a half-updated session.
func (r *Registry) Join(gameID string, c *Client) (players []game.Player, others []*Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.sessions[gameID]
	if sess == nil {
		sess = map[*Client]game.Player{}
		r.sessions[gameID] = sess
	}
	others = make([]*Client, 0, len(sess))
	for cl := range sess {
		if cl != c {
			others = append(others, cl)
		}
	}
	sess[c] = c.player
	return playersOf(sess), others
}

// Leave removes the connection from every session it joined and returns the
// remaining player list per affected game. Calling it again for the same
// connection returns nothing. Sessions are retained once empty; they are
// only torn down by process restart.
func (r *Registry) Leave(c *Client) map[string][]game.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	affected := map[string][]game.Player{}
	for gameID, sess := range r.sessions {
		if _, ok := sess[c]; !ok {
			continue
		}
		delete(sess, c)
		affected[gameID] = playersOf(sess)
	}
	return affected
}

// Players returns a snapshot of the game's current player list.
func (r *Registry) Players(gameID string) []game.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return playersOf(r.sessions[gameID])
}

// Connections returns a snapshot of the game's live connections.
func (r *Registry) Connections(gameID string) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess := r.sessions[gameID]
	out := make([]*Client, 0, len(sess))
	for cl := range sess {
		out = append(out, cl)
	}
	return out
}

func playersOf(sess map[*Client]game.Player) []game.Player {
	seen := map[string]bool{}
	players := make([]game.Player, 0, len(sess))
	for _, p := range sess {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})
	return players
}
