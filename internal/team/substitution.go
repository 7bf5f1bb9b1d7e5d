package team

import (
	"sort"

	"github.com/roach88/ttscore/internal/reject"
)

// Flags records whether a substitute plays for each side of one match.
type Flags struct {
	Home  bool `json:"home"`
	Guest bool `json:"guest"`
}

func (f Flags) get(side Side) bool {
	if side == Home {
		return f.Home
	}
	return f.Guest
}

func (f *Flags) set(side Side, v bool) {
	if side == Home {
		f.Home = v
	} else {
		f.Guest = v
	}
}

// Tracker holds the per-match substitution flags of a sheet.
//
// Toggling a flag cascades forward: every later singles row where the same
// player code occupies a side gets that side's flag forced to the new state.
// Earlier rows are never touched. When two cascades overlap, the one applied
// last wins, including over flags the user set by hand on later rows.
type Tracker struct {
	singles []Row // singles rows in ascending match number
	flags   map[int]Flags
}

// NewTracker creates a tracker over the singles rows of rows.
func NewTracker(rows []Row) *Tracker {
	t := &Tracker{flags: make(map[int]Flags)}
	for _, r := range rows {
		if r.Kind == Singles {
			t.singles = append(t.singles, r)
		}
	}
	sort.Slice(t.singles, func(i, j int) bool { return t.singles[i].Number < t.singles[j].Number })
	return t
}

func (t *Tracker) row(match int) (Row, bool) {
	for _, r := range t.singles {
		if r.Number == match {
			return r, true
		}
	}
	return Row{}, false
}

// Toggle flips the flag of (match, side), cascades the new state forward and
// returns it. Doubles rows and round-1 rows do not allow substitutions.
func (t *Tracker) Toggle(match int, side Side) (bool, error) {
	const op = "toggle substitution"
	if !side.Valid() {
		return false, reject.Newf(reject.CodeInvalidArgument, op, "unknown side %q", side)
	}
	row, ok := t.row(match)
	if !ok {
		return false, reject.Newf(reject.CodeSubstitutionForbidden, op, "match %d is not a singles match", match)
	}
	if row.Round < MinSubstitutionRound {
		return false, reject.Newf(reject.CodeSubstitutionForbidden, op,
			"substitutions start in round %d, match %d is in round %d", MinSubstitutionRound, match, row.Round)
	}

	f := t.flags[match]
	next := !f.get(side)
	f.set(side, next)
	t.flags[match] = f

	code := row.Code(side)
	for _, later := range t.singles {
		if later.Number <= match {
			continue
		}
		if later.HomeCode == code {
			t.force(later.Number, Home, next)
		}
		if later.GuestCode == code {
			t.force(later.Number, Guest, next)
		}
	}
	return next, nil
}

func (t *Tracker) force(match int, side Side, v bool) {
	f := t.flags[match]
	f.set(side, v)
	t.flags[match] = f
}

// IsActive reports whether a substitute plays for side in match. Matches
// without a recorded entry have no substitution.
func (t *Tracker) IsActive(match int, side Side) bool {
	f, ok := t.flags[match]
	return ok && f.get(side)
}

// Snapshot returns a copy of the recorded flags.
func (t *Tracker) Snapshot() map[int]Flags {
	out := make(map[int]Flags, len(t.flags))
	for k, v := range t.flags {
		out[k] = v
	}
	return out
}

// Restore replaces the recorded flags without cascading. Entries for match
// numbers that are not singles rows are dropped.
func (t *Tracker) Restore(flags map[int]Flags) {
	t.flags = make(map[int]Flags, len(flags))
	for k, v := range flags {
		if _, ok := t.row(k); ok {
			t.flags[k] = v
		}
	}
}
