// Package lineup loads team-match lineups written in CUE.
//
// A lineup fixes the sheet configuration, the header and the player names
// before the first set is entered:
//
//	variant: "4rounds"
//	doubles: 2
//	venue:   "Hala Pasienky"
//	home: {
//		name: "Slávia"
//		players: {A: "Novák", B: "Kováč"}
//		subs: {A: "Bednár"}
//		pairs: ["Novák/Kováč", "C/D"]
//	}
//
// Files are validated against the embedded #Lineup definition, so unknown
// player codes and out-of-range doubles counts are reported with their
// source position.
package lineup

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/ttscore/internal/team"
)

//go:embed schema.cue
var schemaCUE string

// Lineup is a decoded lineup file.
type Lineup struct {
	Variant team.Variant `json:"variant"`
	Doubles int          `json:"doubles"`
	Venue   string       `json:"venue"`
	Date    string       `json:"date"`
	Home    Team         `json:"home"`
	Guest   Team         `json:"guest"`
}

// Team is one side of a lineup. Players and Subs are keyed by player code.
// Pairs holds the doubles labels in row order.
type Team struct {
	Name    string            `json:"name"`
	Players map[string]string `json:"players"`
	Subs    map[string]string `json:"subs"`
	Pairs   []string          `json:"pairs"`
}

// Error is a lineup error, positioned in the source when CUE knows where.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load reads a lineup from a .cue file, or from the CUE package in a
// directory.
func Load(path string) (*Lineup, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("lineup not found: %v", err)}
	}

	ctx := cuecontext.New()
	var v cue.Value
	if info.IsDir() {
		instances := load.Instances([]string{"."}, &load.Config{Dir: path})
		if len(instances) == 0 {
			return nil, &Error{Message: fmt.Sprintf("no CUE instances in %s", path)}
		}
		if instances[0].Err != nil {
			return nil, formatCUEError(instances[0].Err)
		}
		v = ctx.BuildInstance(instances[0])
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("reading lineup: %v", err)}
		}
		v = ctx.CompileBytes(data, cue.Filename(path))
	}
	return decode(ctx, v)
}

// Parse reads a lineup from CUE source. filename is used in error positions.
func Parse(filename string, src []byte) (*Lineup, error) {
	ctx := cuecontext.New()
	return decode(ctx, ctx.CompileBytes(src, cue.Filename(filename)))
}

func decode(ctx *cue.Context, v cue.Value) (*Lineup, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("lineup schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Lineup"))

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var l Lineup
	if err := unified.Decode(&l); err != nil {
		return nil, formatCUEError(err)
	}

	for _, side := range []struct {
		name string
		t    Team
	}{{"home", l.Home}, {"guest", l.Guest}} {
		if len(side.t.Pairs) > l.Doubles {
			return nil, &Error{
				Message: fmt.Sprintf("%s.pairs: %d labels for %d doubles rows", side.name, len(side.t.Pairs), l.Doubles),
				Pos:     unified.LookupPath(cue.ParsePath(side.name + ".pairs")).Pos(),
			}
		}
	}
	return &l, nil
}

// Sheet builds a fresh team sheet from the lineup.
func (l *Lineup) Sheet() (*team.Sheet, error) {
	s, err := team.NewSheet(team.Config{Variant: l.Variant, Doubles: l.Doubles})
	if err != nil {
		return nil, err
	}
	if err := l.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply writes the lineup header, names and doubles labels onto s. The
// sheet configuration is left as it is.
func (l *Lineup) Apply(s *team.Sheet) error {
	s.SetMeta(team.Meta{
		Venue:     l.Venue,
		Date:      l.Date,
		HomeTeam:  l.Home.Name,
		GuestTeam: l.Guest.Name,
	})

	for _, side := range []struct {
		side team.Side
		t    Team
	}{{team.Home, l.Home}, {team.Guest, l.Guest}} {
		for code, name := range side.t.Players {
			if err := s.SetPlayer(side.side, code, name); err != nil {
				return err
			}
		}
		for code, name := range side.t.Subs {
			if err := s.SetPlayer(side.side, team.SubSlot(code), name); err != nil {
				return err
			}
		}
	}

	doubles := s.Config().Doubles
	for i := 0; i < doubles; i++ {
		home, guest := pair(l.Home.Pairs, i), pair(l.Guest.Pairs, i)
		if home == "" && guest == "" {
			continue
		}
		if err := s.SetDoublesLabels(i+1, home, guest); err != nil {
			return err
		}
	}
	return nil
}

func pair(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	le := &Error{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
