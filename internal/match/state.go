package match

// Side identifies one of the two competitors.
type Side int

const (
	Side0 Side = 0
	Side1 Side = 1
)

// Valid reports whether s is Side0 or Side1.
func (s Side) Valid() bool {
	return s == Side0 || s == Side1
}

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

const (
	// PointsToWinSet is the minimum score that can win a set.
	PointsToWinSet = 11

	// MinSetLead is the lead required to close a set.
	MinSetLead = 2

	// DeuceScore is the score both sides must reach for per-point serve changes.
	DeuceScore = 10

	// DefaultBestOf is the match length a new engine starts with.
	DefaultBestOf = 5
)

// Competitor is one side of a single match.
type Competitor struct {
	Name  string `json:"name"`
	Club  string `json:"club"`
	Score int    `json:"score"`
	Sets  int    `json:"sets"`
}

// SetRecord is the final score of a closed set. It is never mutated after
// it has been appended to the history.
type SetRecord struct {
	Side0Points int `json:"p1Points"`
	Side1Points int `json:"p2Points"`
}

// Winner returns the side with the higher score.
func (r SetRecord) Winner() Side {
	if r.Side0Points > r.Side1Points {
		return Side0
	}
	return Side1
}

// State is a snapshot of a single match.
type State struct {
	Competitors [2]Competitor `json:"competitors"`
	SetNumber   int           `json:"currentSet"`
	Finished    bool          `json:"finished"`
	FirstServer Side          `json:"firstServer"`
	History     []SetRecord   `json:"history"`
}

func initialState() State {
	return State{
		Competitors: [2]Competitor{
			{Name: "Player 1"},
			{Name: "Player 2"},
		},
		SetNumber:   1,
		FirstServer: Side0,
		History:     []SetRecord{},
	}
}

func (s State) clone() State {
	c := s
	c.History = make([]SetRecord, len(s.History))
	copy(c.History, s.History)
	return c
}
