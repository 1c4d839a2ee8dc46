package game

import "time"

type Phase string

const (
	PhaseEditing  Phase = "editing"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Game is a transient copy of one game document. The store owns the
// persistent record; handlers fetch a fresh copy per event and trust this
// copy only for the single mutation they are about to apply.
type Game struct {
	ID        string        `json:"id"`
	AuthorID  string        `json:"author_id"`
	Title     string        `json:"title"`
	Phase     Phase         `json:"phase"`
	Fields    []Field       `json:"fields"`
	Winners   []string      `json:"winners"`
	Podium    []PodiumEntry `json:"podium"`
	CreatedAt time.Time     `json:"created_at"`
}

type Field struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Player identifies one joined user. Equality is by ID; the same player may
// hold several live connections at once.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PodiumEntry struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Placement int    `json:"placement"`
}

func (g *Game) IsAuthor(userID string) bool {
	return g.AuthorID == userID
}

func (g *Game) IsEligibleWinner(userID string) bool {
	for _, w := range g.Winners {
		if w == userID {
			return true
		}
	}
	return false
}

func (g *Game) OnPodium(userID string) bool {
	for _, e := range g.Podium {
		if e.UserID == userID {
			return true
		}
	}
	return false
}
