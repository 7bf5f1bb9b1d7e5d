package team

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Totals is a per-side sum.
type Totals struct {
	Home  int `json:"home"`
	Guest int `json:"guest"`
}

// Ratio formats the totals as "H:G".
func (t Totals) Ratio() string {
	return fmt.Sprintf("%d:%d", t.Home, t.Guest)
}

func (t *Totals) add(side Side, n int) {
	if side == Home {
		t.Home += n
	} else {
		t.Guest += n
	}
}

// Record is a win/loss count.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// String formats the record as "W/L".
func (r Record) String() string {
	return fmt.Sprintf("%d/%d", r.Wins, r.Losses)
}

func (r *Record) credit(won bool) {
	if won {
		r.Wins++
	} else {
		r.Losses++
	}
}

// SubstituteRecord is the record of a substitute, keyed by name per side,
// with the player codes the substitute stood in for.
type SubstituteRecord struct {
	Side     Side     `json:"side"`
	Name     string   `json:"name"`
	Replaced []string `json:"replaced"`
	Record
}

// Statistics aggregates the derived results of a sheet.
type Statistics struct {
	// Matches counts decided rows per winning side.
	Matches Totals `json:"matches"`

	// Sets sums the per-row set counts of rows with a result.
	Sets Totals `json:"sets"`

	// Points sums the points of every valid set entry.
	Points Totals `json:"points"`

	// Players holds the singles records of the regular players by side and code.
	Players map[Side]map[string]Record `json:"players"`

	// Substitutes lists substitute records, home first, names in Slovak
	// collation order.
	Substitutes []SubstituteRecord `json:"substitutes"`
}

// Statistics computes the sheet statistics.
//
// Singles rows are credited to the regular player unless the side is
// substituted in that row, in which case the entered substitute name gets the
// credit and records the replaced code. A substituted side with no name
// entered is credited to nobody. Doubles rows count towards the team totals
// only.
func (s *Sheet) Statistics() Statistics {
	st := Statistics{
		Players: map[Side]map[string]Record{
			Home:  make(map[string]Record),
			Guest: make(map[string]Record),
		},
	}
	for _, side := range []Side{Home, Guest} {
		for _, c := range Codes(side) {
			st.Players[side][c] = Record{}
		}
	}

	type subKey struct {
		side Side
		name string
	}
	subs := make(map[subKey]*SubstituteRecord)

	for _, row := range s.rows {
		for _, raw := range row.Sets {
			if e, ok := ParseSetEntry(raw); ok {
				st.Points.Home += e.Home
				st.Points.Guest += e.Guest
			}
		}

		res, ok := RowSetsResult(row)
		if !ok {
			continue
		}
		st.Sets.Home += res.Home
		st.Sets.Guest += res.Guest

		winner, decided := res.Winner()
		if !decided {
			continue
		}
		st.Matches.add(winner, 1)

		if row.Kind != Singles {
			continue
		}
		for _, side := range []Side{Home, Guest} {
			won := side == winner
			code := row.Code(side)
			if !s.subs.IsActive(row.Number, side) {
				rec := st.Players[side][code]
				rec.credit(won)
				st.Players[side][code] = rec
				continue
			}
			name := row.SubName(side)
			if name == "" {
				continue
			}
			k := subKey{side: side, name: name}
			sr, exists := subs[k]
			if !exists {
				sr = &SubstituteRecord{Side: side, Name: name}
				subs[k] = sr
			}
			if !containsString(sr.Replaced, code) {
				sr.Replaced = append(sr.Replaced, code)
			}
			sr.credit(won)
		}
	}

	st.Substitutes = make([]SubstituteRecord, 0, len(subs))
	for _, sr := range subs {
		sort.Strings(sr.Replaced)
		st.Substitutes = append(st.Substitutes, *sr)
	}
	sortSubstitutes(st.Substitutes)
	return st
}

func sortSubstitutes(recs []SubstituteRecord) {
	col := collate.New(language.Slovak)
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Side != recs[j].Side {
			return recs[i].Side == Home
		}
		return col.CompareString(recs[i].Name, recs[j].Name) < 0
	})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
