package team

import "fmt"

// Snapshot is the serializable state of a sheet, used for the in-progress
// draft. Derived values are not stored; they are recomputed on restore.
type Snapshot struct {
	Session       string        `json:"session,omitempty"`
	Variant       Variant       `json:"variant"`
	DoublesCount  int           `json:"doublesCount"`
	Meta          Meta          `json:"meta"`
	Players       Roster        `json:"players"`
	Substitutions map[int]Flags `json:"matchSubstitutions"`
	Rows          []Row         `json:"rows"`
}

// Snapshot captures the sheet state.
func (s *Sheet) Snapshot() Snapshot {
	return Snapshot{
		Session:       s.session,
		Variant:       s.cfg.Variant,
		DoublesCount:  s.cfg.Doubles,
		Meta:          s.meta,
		Players:       s.roster.clone(),
		Substitutions: s.subs.Snapshot(),
		Rows:          s.Rows(),
	}
}

// Restore rebuilds a sheet from a snapshot. The layout is regenerated from
// the configuration; per-row input is copied onto rows with the same number
// and kind, so a snapshot from an older layout restores what still fits.
func Restore(snap Snapshot) (*Sheet, error) {
	s, err := NewSheet(Config{Variant: snap.Variant, Doubles: snap.DoublesCount})
	if err != nil {
		return nil, fmt.Errorf("restore sheet: %w", err)
	}
	s.session = snap.Session
	s.SetMeta(snap.Meta)

	for _, side := range []Side{Home, Guest} {
		for slot, name := range snap.Players.side(side) {
			if ValidSlot(side, slot) {
				s.roster.side(side)[slot] = CleanName(name)
			}
		}
	}

	for _, saved := range snap.Rows {
		i, err := s.index(saved.Number)
		if err != nil || s.rows[i].Kind != saved.Kind {
			continue
		}
		row := &s.rows[i]
		row.Sets = saved.Sets
		if row.Kind == Doubles {
			row.HomeLabel = saved.HomeLabel
			row.GuestLabel = saved.GuestLabel
		} else {
			row.HomeSub = saved.HomeSub
			row.GuestSub = saved.GuestSub
		}
	}
	s.subs.Restore(snap.Substitutions)
	return s, nil
}
