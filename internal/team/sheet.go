package team

import (
	"fmt"

	"github.com/roach88/ttscore/internal/reject"
)

// Sheet is the team-match engine: it owns the rows, the roster and the
// substitution state of one team match.
//
// A Sheet is owned by one caller; it is not safe for concurrent use.
type Sheet struct {
	session string
	cfg     Config
	meta    Meta
	roster  Roster
	rows    []Row
	subs    *Tracker
}

// NewSheet creates an empty sheet laid out for cfg.
func NewSheet(cfg Config) (*Sheet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sheet{cfg: cfg, roster: NewRoster()}
	s.layout()
	return s, nil
}

func (s *Sheet) layout() {
	s.rows = Layout(s.cfg)
	s.subs = NewTracker(s.rows)
}

// Configure switches the layout. The rows are regenerated: all set entries,
// doubles labels, substitute names and substitution flags are discarded.
// Roster and metadata are kept.
func (s *Sheet) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.layout()
	return nil
}

// Config returns the current layout configuration.
func (s *Sheet) Config() Config { return s.cfg }

// Session returns the draft session id, empty until one is assigned.
func (s *Sheet) Session() string { return s.session }

// SetSession assigns the draft session id.
func (s *Sheet) SetSession(id string) { s.session = id }

// Meta returns the match header.
func (s *Sheet) Meta() Meta { return s.meta }

// SetMeta replaces the match header.
func (s *Sheet) SetMeta(m Meta) {
	s.meta = Meta{
		Venue:     CleanName(m.Venue),
		Date:      CleanName(m.Date),
		HomeTeam:  CleanName(m.HomeTeam),
		GuestTeam: CleanName(m.GuestTeam),
	}
}

// Roster returns a copy of the roster.
func (s *Sheet) Roster() Roster { return s.roster.clone() }

// SetPlayer registers name for a regular or substitute slot of side.
func (s *Sheet) SetPlayer(side Side, slot, name string) error {
	if !side.Valid() || !ValidSlot(side, slot) {
		return reject.Newf(reject.CodeInvalidArgument, "set player", "unknown %s slot %q", side, slot)
	}
	s.roster.side(side)[slot] = CleanName(name)
	return nil
}

func (s *Sheet) index(match int) (int, error) {
	i := match - 1
	if i < 0 || i >= len(s.rows) {
		return 0, reject.Newf(reject.CodeUnknownMatch, "", "match %d does not exist (sheet has %d)", match, len(s.rows))
	}
	return i, nil
}

// EnterSet stores the raw score text for set (1..MaxSets) of match and returns
// the stored text. Shorthand input is replaced by its "H:G" form; any other
// input is stored as typed, and malformed text is simply ignored by the
// derived results.
func (s *Sheet) EnterSet(match, set int, raw string) (string, error) {
	i, err := s.index(match)
	if err != nil {
		return "", err
	}
	if set < 1 || set > MaxSets {
		return "", reject.Newf(reject.CodeInvalidArgument, "enter set", "set must be 1..%d, got %d", MaxSets, set)
	}
	text := NormalizeSetEntry(raw)
	s.rows[i].Sets[set-1] = text
	return text, nil
}

// SetDoublesLabels stores the free-text pair labels of a doubles row.
func (s *Sheet) SetDoublesLabels(match int, home, guest string) error {
	i, err := s.index(match)
	if err != nil {
		return err
	}
	if s.rows[i].Kind != Doubles {
		return reject.Newf(reject.CodeInvalidArgument, "set doubles labels", "match %d is not a doubles match", match)
	}
	s.rows[i].HomeLabel = CleanName(home)
	s.rows[i].GuestLabel = CleanName(guest)
	return nil
}

// ToggleSubstitution flips the substitution flag of (match, side) with the
// forward cascade described on Tracker, and returns the new state.
func (s *Sheet) ToggleSubstitution(match int, side Side) (bool, error) {
	if _, err := s.index(match); err != nil {
		return false, err
	}
	return s.subs.Toggle(match, side)
}

// IsSubstituted reports whether a substitute plays for side in match.
func (s *Sheet) IsSubstituted(match int, side Side) bool {
	return s.subs.IsActive(match, side)
}

// Substitutions returns a copy of the recorded substitution flags.
func (s *Sheet) Substitutions() map[int]Flags {
	return s.subs.Snapshot()
}

// SetSubstituteName stores the substitute name for (match, side) and copies
// it to every later singles row where the same player code occupies a side.
func (s *Sheet) SetSubstituteName(match int, side Side, name string) error {
	const op = "set substitute name"
	i, err := s.index(match)
	if err != nil {
		return err
	}
	if !side.Valid() {
		return reject.Newf(reject.CodeInvalidArgument, op, "unknown side %q", side)
	}
	row := s.rows[i]
	if row.Kind != Singles {
		return reject.Newf(reject.CodeSubstitutionForbidden, op, "match %d is not a singles match", match)
	}
	clean := CleanName(name)
	code := row.Code(side)
	s.rows[i].setSubName(side, clean)
	for j := i + 1; j < len(s.rows); j++ {
		later := &s.rows[j]
		if later.Kind != Singles {
			continue
		}
		if later.HomeCode == code {
			later.HomeSub = clean
		}
		if later.GuestCode == code {
			later.GuestSub = clean
		}
	}
	return nil
}

// Rows returns a copy of all rows in match order.
func (s *Sheet) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Row returns a copy of the row for match.
func (s *Sheet) Row(match int) (Row, bool) {
	i, err := s.index(match)
	if err != nil {
		return Row{}, false
	}
	return s.rows[i], true
}

// Label returns the display label of side in match: the pair label of a
// doubles row, "Name (code)" for a substitute, else the player's name or code.
func (s *Sheet) Label(match int, side Side) string {
	row, ok := s.Row(match)
	if !ok {
		return ""
	}
	if row.Kind == Doubles {
		if side == Home {
			return row.HomeLabel
		}
		return row.GuestLabel
	}
	code := row.Code(side)
	if s.subs.IsActive(match, side) {
		if sub := row.SubName(side); sub != "" {
			return fmt.Sprintf("%s (%s)", sub, code)
		}
		return fmt.Sprintf("(%s)", code)
	}
	if name := s.roster.Name(side, code); name != "" {
		return name
	}
	return code
}
