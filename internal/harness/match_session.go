package harness

import (
	"context"
	"fmt"

	"github.com/roach88/ttscore/internal/archive"
	"github.com/roach88/ttscore/internal/match"
)

var matchActionNames = map[string]bool{
	"point":         true,
	"rally":         true,
	"play_to":       true,
	"close_set":     true,
	"reset_set":     true,
	"reset_match":   true,
	"toggle_server": true,
	"best_of":       true,
	"competitor":    true,
	"save":          true,
}

// MatchView is the final state of a single-match scenario.
type MatchView struct {
	Competitors [2]match.Competitor   `json:"competitors"`
	SetNumber   int                   `json:"setNumber"`
	Finished    bool                  `json:"finished"`
	FirstServer match.Side            `json:"firstServer"`
	Server      match.Side            `json:"server"`
	CanCloseSet bool                  `json:"canCloseSet"`
	SetsToWin   int                   `json:"setsToWin"`
	Winner      *match.Side           `json:"winner"`
	History     []match.SetRecord     `json:"history"`
	Archive     []archive.MatchRecord `json:"archive"`
}

type matchSession struct {
	engine  *match.Engine
	archive *archive.Archive
}

func newMatchSession(setup Setup, arch *archive.Archive) (*matchSession, error) {
	bestOf := setup.BestOf
	if bestOf == 0 {
		bestOf = match.DefaultBestOf
	}
	e, err := match.NewBestOf(bestOf)
	if err != nil {
		return nil, err
	}
	for i, c := range setup.Competitors {
		if err := e.SetCompetitor(match.Side(i), c.Name, c.Club); err != nil {
			return nil, err
		}
	}
	return &matchSession{engine: e, archive: arch}, nil
}

func (s *matchSession) apply(ctx context.Context, step Step) (interface{}, error) {
	e := s.engine
	switch step.Action {
	case "point":
		side, err := argInt(step.Args, "side")
		if err != nil {
			return nil, err
		}
		delta, err := argIntOr(step.Args, "delta", 1)
		if err != nil {
			return nil, err
		}
		return nil, e.AwardPoint(match.Side(side), delta)

	case "rally":
		// Awards one point per listed side, stopping at the first rejection.
		sides, err := argInts(step.Args, "sides")
		if err != nil {
			return nil, err
		}
		for _, side := range sides {
			if err := e.AwardPoint(match.Side(side), 1); err != nil {
				return nil, err
			}
		}
		return nil, nil

	case "play_to":
		// Scores alternately until the current set stands at the target.
		target, err := argInts(step.Args, "score")
		if err != nil {
			return nil, err
		}
		if len(target) != 2 {
			return nil, fmt.Errorf("argument \"score\" must have 2 elements, got %d", len(target))
		}
		if e.Score(match.Side0) > target[0] || e.Score(match.Side1) > target[1] {
			return nil, fmt.Errorf("current score %d:%d is past %d:%d",
				e.Score(match.Side0), e.Score(match.Side1), target[0], target[1])
		}
		for e.Score(match.Side0) < target[0] || e.Score(match.Side1) < target[1] {
			for side := match.Side0; side <= match.Side1; side++ {
				if e.Score(side) < target[side] {
					if err := e.AwardPoint(side, 1); err != nil {
						return nil, err
					}
				}
			}
		}
		return nil, nil

	case "close_set":
		return nil, e.CloseSet()

	case "reset_set":
		return nil, e.ResetCurrentSet()

	case "reset_match":
		e.ResetMatch()
		return nil, nil

	case "toggle_server":
		return nil, e.ToggleFirstServer()

	case "best_of":
		n, err := argInt(step.Args, "n")
		if err != nil {
			return nil, err
		}
		confirm, err := argBoolOr(step.Args, "confirm", false)
		if err != nil {
			return nil, err
		}
		if err := e.SetMatchLength(n, func() bool { return confirm }); err != nil {
			return nil, err
		}
		return e.SetsToWin(), nil

	case "competitor":
		side, err := argInt(step.Args, "side")
		if err != nil {
			return nil, err
		}
		name, err := argString(step.Args, "name")
		if err != nil {
			return nil, err
		}
		club, err := argStringOr(step.Args, "club", "")
		if err != nil {
			return nil, err
		}
		return nil, e.SetCompetitor(match.Side(side), name, club)

	case "save":
		rec, err := s.archive.SaveMatch(ctx, e)
		if err != nil {
			return nil, err
		}
		return rec.ID, nil
	}
	return nil, fmt.Errorf("unknown match action %q", step.Action)
}

func (s *matchSession) view(ctx context.Context) (interface{}, error) {
	e := s.engine
	st := e.Snapshot()
	v := MatchView{
		Competitors: st.Competitors,
		SetNumber:   st.SetNumber,
		Finished:    st.Finished,
		FirstServer: st.FirstServer,
		Server:      e.CurrentServer(),
		CanCloseSet: e.CanCloseSet(),
		SetsToWin:   e.SetsToWin(),
		History:     st.History,
	}
	if w, ok := e.Winner(); ok {
		v.Winner = &w
	}
	archived, err := s.archive.Matches(ctx)
	if err != nil {
		return nil, err
	}
	v.Archive = archived
	return v, nil
}
