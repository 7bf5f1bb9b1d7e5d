package match

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/ttscore/internal/reject"
)

// Engine is the score engine of one single match.
//
// An Engine is owned by one caller; it is not safe for concurrent use.
type Engine struct {
	state     State
	setsToWin int
}

// New creates an engine for a best-of-DefaultBestOf match.
func New() *Engine {
	return &Engine{
		state:     initialState(),
		setsToWin: SetsToWin(DefaultBestOf),
	}
}

// NewBestOf creates an engine for a best-of-bestOf match.
func NewBestOf(bestOf int) (*Engine, error) {
	if bestOf < 1 {
		return nil, reject.Newf(reject.CodeInvalidArgument, "new", "match length must be positive, got %d", bestOf)
	}
	e := New()
	e.setsToWin = SetsToWin(bestOf)
	return e, nil
}

// AwardPoint adds delta (+1 or -1) to side's score in the current set.
func (e *Engine) AwardPoint(side Side, delta int) error {
	const op = "award point"
	if !side.Valid() {
		return reject.Newf(reject.CodeInvalidArgument, op, "unknown side %d", side)
	}
	if delta != 1 && delta != -1 {
		return reject.Newf(reject.CodeInvalidArgument, op, "delta must be +1 or -1, got %d", delta)
	}
	if e.state.Finished {
		return reject.New(reject.CodeMatchFinished, op, "match is finished")
	}
	c := &e.state.Competitors[side]
	if delta < 0 && c.Score == 0 {
		return reject.Newf(reject.CodeScoreAtZero, op, "side %d has no points to remove", side)
	}
	c.Score += delta
	return nil
}

// CanCloseSet reports whether the current set can be closed: the match is in
// progress, a side has at least PointsToWinSet and leads by MinSetLead.
func (e *Engine) CanCloseSet() bool {
	if e.state.Finished {
		return false
	}
	return SetDecided(e.state.Competitors[0].Score, e.state.Competitors[1].Score)
}

// CloseSet records the current set and awards it to the higher score. The
// match finishes when the winner reaches the sets-to-win threshold; otherwise
// the next set starts at 0:0 with the other side serving first.
func (e *Engine) CloseSet() error {
	const op = "close set"
	if e.state.Finished {
		return reject.New(reject.CodeMatchFinished, op, "match is finished")
	}
	if !e.CanCloseSet() {
		return reject.Newf(reject.CodeSetNotClosable, op, "set is not decided at %d:%d",
			e.state.Competitors[0].Score, e.state.Competitors[1].Score)
	}

	rec := SetRecord{
		Side0Points: e.state.Competitors[0].Score,
		Side1Points: e.state.Competitors[1].Score,
	}
	e.state.History = append(e.state.History, rec)

	winner := &e.state.Competitors[rec.Winner()]
	winner.Sets++

	if winner.Sets >= e.setsToWin {
		e.state.Finished = true
		return nil
	}

	e.state.SetNumber++
	e.state.Competitors[0].Score = 0
	e.state.Competitors[1].Score = 0
	e.state.FirstServer = e.state.FirstServer.Other()
	return nil
}

// ResetCurrentSet zeroes both scores of the current set.
func (e *Engine) ResetCurrentSet() error {
	if e.state.Finished {
		return reject.New(reject.CodeMatchFinished, "reset set", "match is finished")
	}
	e.state.Competitors[0].Score = 0
	e.state.Competitors[1].Score = 0
	return nil
}

// ResetMatch returns the match to its initial state. Competitor names, clubs
// and the match length are kept.
func (e *Engine) ResetMatch() {
	fresh := initialState()
	for i := range fresh.Competitors {
		fresh.Competitors[i].Name = e.state.Competitors[i].Name
		fresh.Competitors[i].Club = e.state.Competitors[i].Club
	}
	e.state = fresh
}

// ToggleFirstServer swaps the side that served first in the current set.
func (e *Engine) ToggleFirstServer() error {
	if e.state.Finished {
		return reject.New(reject.CodeMatchFinished, "toggle server", "match is finished")
	}
	e.state.FirstServer = e.state.FirstServer.Other()
	return nil
}

// SetMatchLength changes the match to best-of-bestOf.
//
// Shortening the match to a threshold a side already holds is rejected.
// Otherwise a change while the match is in progress needs confirm; a nil
// confirm or a false answer rejects the change.
func (e *Engine) SetMatchLength(bestOf int, confirm func() bool) error {
	const op = "set match length"
	if bestOf < 1 {
		return reject.Newf(reject.CodeInvalidArgument, op, "match length must be positive, got %d", bestOf)
	}
	if e.state.Finished {
		return reject.New(reject.CodeMatchFinished, op, "match is finished")
	}
	next := SetsToWin(bestOf)
	if e.InProgress() {
		lead := max(e.state.Competitors[0].Sets, e.state.Competitors[1].Sets)
		if lead >= next {
			return reject.Newf(reject.CodeThresholdReached, op,
				"a side already holds %d sets, best of %d needs %d", lead, bestOf, next)
		}
		if confirm == nil || !confirm() {
			return reject.New(reject.CodeNotConfirmed, op, "changing the length of a running match was not confirmed")
		}
	}
	e.setsToWin = next
	return nil
}

// SetCompetitor updates the name and club of side. Allowed at any time.
func (e *Engine) SetCompetitor(side Side, name, club string) error {
	if !side.Valid() {
		return reject.Newf(reject.CodeInvalidArgument, "set competitor", "unknown side %d", side)
	}
	e.state.Competitors[side].Name = cleanText(name)
	e.state.Competitors[side].Club = cleanText(club)
	return nil
}

// CurrentServer returns the side serving the next point.
func (e *Engine) CurrentServer() Side {
	return ServerFor(e.state.FirstServer, e.state.Competitors[0].Score, e.state.Competitors[1].Score)
}

// SetsToWin returns the number of sets needed to win the match.
func (e *Engine) SetsToWin() int {
	return e.setsToWin
}

// Score returns side's points in the current set.
func (e *Engine) Score(side Side) int {
	return e.state.Competitors[side].Score
}

// Sets returns the number of sets side has won.
func (e *Engine) Sets(side Side) int {
	return e.state.Competitors[side].Sets
}

// SetNumber returns the 1-based number of the current set.
func (e *Engine) SetNumber() int {
	return e.state.SetNumber
}

// Finished reports whether the match is over.
func (e *Engine) Finished() bool {
	return e.state.Finished
}

// FirstServer returns the side that served first in the current set.
func (e *Engine) FirstServer() Side {
	return e.state.FirstServer
}

// InProgress reports whether any point has been scored or any set closed.
func (e *Engine) InProgress() bool {
	s := e.state
	return s.Competitors[0].Score > 0 || s.Competitors[1].Score > 0 || len(s.History) > 0
}

// Winner returns the winning side of a finished match.
func (e *Engine) Winner() (Side, bool) {
	if !e.state.Finished {
		return 0, false
	}
	if e.state.Competitors[0].Sets > e.state.Competitors[1].Sets {
		return Side0, true
	}
	return Side1, true
}

// History returns a copy of the closed sets in order.
func (e *Engine) History() []SetRecord {
	out := make([]SetRecord, len(e.state.History))
	copy(out, e.state.History)
	return out
}

// Snapshot returns a deep copy of the engine state.
func (e *Engine) Snapshot() State {
	return e.state.clone()
}

func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
