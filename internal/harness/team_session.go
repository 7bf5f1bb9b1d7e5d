package harness

import (
	"context"
	"fmt"

	"github.com/roach88/ttscore/internal/archive"
	"github.com/roach88/ttscore/internal/lineup"
	"github.com/roach88/ttscore/internal/team"
)

var teamActionNames = map[string]bool{
	"score":      true,
	"doubles":    true,
	"toggle_sub": true,
	"sub_name":   true,
	"player":     true,
	"meta":       true,
	"configure":  true,
	"save":       true,
	"draft":      true,
}

// TeamView is the final state of a team-match scenario.
type TeamView struct {
	Variant       team.Variant       `json:"variant"`
	DoublesCount  int                `json:"doublesCount"`
	Meta          team.Meta          `json:"meta"`
	Rows          []RowView          `json:"rows"`
	TeamScore     string             `json:"teamScore"`
	Substitutions map[int]team.Flags `json:"substitutions"`
	Statistics    team.Statistics    `json:"statistics"`
	Archive       []ArchivedTeam     `json:"archive"`
}

// RowView is one sheet row with its derived results.
type RowView struct {
	Number       int       `json:"number"`
	Kind         team.Kind `json:"kind"`
	Round        int       `json:"round,omitempty"`
	Home         string    `json:"home"`
	Guest        string    `json:"guest"`
	Sets         []string  `json:"sets"`
	SetsResult   string    `json:"setsResult"`
	Winner       team.Side `json:"winner"`
	RunningScore string    `json:"runningScore"`
}

// ArchivedTeam summarizes an archived team match.
type ArchivedTeam struct {
	ID         int64  `json:"id"`
	HomeTeam   string `json:"homeTeam"`
	GuestTeam  string `json:"guestTeam"`
	FinalScore string `json:"finalScore"`
}

type teamSession struct {
	sheet   *team.Sheet
	archive *archive.Archive
}

func newTeamSession(setup Setup, arch *archive.Archive) (*teamSession, error) {
	cfg := team.DefaultConfig()
	var l *lineup.Lineup
	if setup.Lineup != "" {
		var err error
		if l, err = lineup.Load(setup.Lineup); err != nil {
			return nil, err
		}
		cfg = team.Config{Variant: l.Variant, Doubles: l.Doubles}
	}
	if setup.Variant != "" {
		cfg.Variant = team.Variant(setup.Variant)
	}
	if setup.Doubles != nil {
		cfg.Doubles = *setup.Doubles
	}

	sheet, err := team.NewSheet(cfg)
	if err != nil {
		return nil, err
	}
	if l != nil {
		if err := l.Apply(sheet); err != nil {
			return nil, err
		}
	}
	return &teamSession{sheet: sheet, archive: arch}, nil
}

func argSide(args map[string]interface{}) (team.Side, error) {
	raw, err := argString(args, "side")
	if err != nil {
		return "", err
	}
	return team.ParseSide(raw)
}

func (s *teamSession) apply(ctx context.Context, step Step) (interface{}, error) {
	args := step.Args
	switch step.Action {
	case "score":
		m, err := argInt(args, "match")
		if err != nil {
			return nil, err
		}
		set, err := argInt(args, "set")
		if err != nil {
			return nil, err
		}
		entry, err := argString(args, "entry")
		if err != nil {
			return nil, err
		}
		return s.sheet.EnterSet(m, set, entry)

	case "doubles":
		m, err := argInt(args, "match")
		if err != nil {
			return nil, err
		}
		home, err := argStringOr(args, "home", "")
		if err != nil {
			return nil, err
		}
		guest, err := argStringOr(args, "guest", "")
		if err != nil {
			return nil, err
		}
		return nil, s.sheet.SetDoublesLabels(m, home, guest)

	case "toggle_sub":
		m, err := argInt(args, "match")
		if err != nil {
			return nil, err
		}
		side, err := argSide(args)
		if err != nil {
			return nil, err
		}
		return s.sheet.ToggleSubstitution(m, side)

	case "sub_name":
		m, err := argInt(args, "match")
		if err != nil {
			return nil, err
		}
		side, err := argSide(args)
		if err != nil {
			return nil, err
		}
		name, err := argString(args, "name")
		if err != nil {
			return nil, err
		}
		name = s.sheet.Roster().ResolveSubstitute(side, name)
		if err := s.sheet.SetSubstituteName(m, side, name); err != nil {
			return nil, err
		}
		return name, nil

	case "player":
		side, err := argSide(args)
		if err != nil {
			return nil, err
		}
		slot, err := argString(args, "slot")
		if err != nil {
			return nil, err
		}
		name, err := argString(args, "name")
		if err != nil {
			return nil, err
		}
		return nil, s.sheet.SetPlayer(side, slot, name)

	case "meta":
		m := s.sheet.Meta()
		var err error
		if m.Venue, err = argStringOr(args, "venue", m.Venue); err != nil {
			return nil, err
		}
		if m.Date, err = argStringOr(args, "date", m.Date); err != nil {
			return nil, err
		}
		if m.HomeTeam, err = argStringOr(args, "home", m.HomeTeam); err != nil {
			return nil, err
		}
		if m.GuestTeam, err = argStringOr(args, "guest", m.GuestTeam); err != nil {
			return nil, err
		}
		s.sheet.SetMeta(m)
		return nil, nil

	case "configure":
		cfg := s.sheet.Config()
		variant, err := argStringOr(args, "variant", string(cfg.Variant))
		if err != nil {
			return nil, err
		}
		doubles, err := argIntOr(args, "doubles", cfg.Doubles)
		if err != nil {
			return nil, err
		}
		return nil, s.sheet.Configure(team.Config{Variant: team.Variant(variant), Doubles: doubles})

	case "save":
		confirm, err := argBoolOr(args, "confirm", false)
		if err != nil {
			return nil, err
		}
		rec, err := s.archive.SaveTeamMatch(ctx, s.sheet, func() bool { return confirm })
		if err != nil {
			return nil, err
		}
		return rec.FinalScore, nil

	case "draft":
		// Round-trips the sheet through the draft key and continues on the
		// restored copy.
		if err := s.archive.SaveDraft(ctx, s.sheet); err != nil {
			return nil, err
		}
		restored, ok, err := s.archive.LoadDraft(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("draft was not restored")
		}
		s.sheet = restored
		return restored.Session(), nil
	}
	return nil, fmt.Errorf("unknown team action %q", step.Action)
}

func (s *teamSession) view(ctx context.Context) (interface{}, error) {
	sh := s.sheet
	cfg := sh.Config()
	v := TeamView{
		Variant:       cfg.Variant,
		DoublesCount:  cfg.Doubles,
		Meta:          sh.Meta(),
		TeamScore:     sh.TeamScore().String(),
		Substitutions: sh.Substitutions(),
		Statistics:    sh.Statistics(),
		Archive:       []ArchivedTeam{},
	}
	for _, row := range sh.Rows() {
		rv := RowView{
			Number:       row.Number,
			Kind:         row.Kind,
			Round:        row.Round,
			Home:         sh.Label(row.Number, team.Home),
			Guest:        sh.Label(row.Number, team.Guest),
			Sets:         append([]string(nil), row.Sets[:]...),
			RunningScore: sh.RunningScoreText(row.Number),
		}
		if res, ok := team.RowSetsResult(row); ok {
			rv.SetsResult = res.String()
			if w, decided := res.Winner(); decided {
				rv.Winner = w
			}
		}
		v.Rows = append(v.Rows, rv)
	}

	archived, err := s.archive.TeamMatches(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range archived {
		v.Archive = append(v.Archive, ArchivedTeam{ID: r.ID, HomeTeam: r.HomeTeam, GuestTeam: r.GuestTeam, FinalScore: r.FinalScore})
	}
	return v, nil
}
