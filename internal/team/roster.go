package team

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Roster maps player codes to names per side. Substitute slots use the
// "sub" prefix: subA..subD for home, subX..subU for guest.
type Roster struct {
	Home  map[string]string `json:"home"`
	Guest map[string]string `json:"guest"`
}

// NewRoster returns a roster with every regular and substitute slot empty.
func NewRoster() Roster {
	r := Roster{Home: make(map[string]string), Guest: make(map[string]string)}
	for _, c := range HomeCodes {
		r.Home[c] = ""
		r.Home[SubSlot(c)] = ""
	}
	for _, c := range GuestCodes {
		r.Guest[c] = ""
		r.Guest[SubSlot(c)] = ""
	}
	return r
}

// SubSlot returns the roster key of the substitute slot for code.
func SubSlot(code string) string {
	return "sub" + code
}

// Codes returns the regular player codes of side.
func Codes(side Side) []string {
	if side == Home {
		return HomeCodes
	}
	return GuestCodes
}

// ValidSlot reports whether slot is a regular or substitute code of side.
func ValidSlot(side Side, slot string) bool {
	for _, c := range Codes(side) {
		if slot == c || slot == SubSlot(c) {
			return true
		}
	}
	return false
}

func (r Roster) side(side Side) map[string]string {
	if side == Home {
		return r.Home
	}
	return r.Guest
}

// Name returns the name registered for slot on side.
func (r Roster) Name(side Side, slot string) string {
	return r.side(side)[slot]
}

func (r Roster) clone() Roster {
	out := Roster{Home: make(map[string]string, len(r.Home)), Guest: make(map[string]string, len(r.Guest))}
	for k, v := range r.Home {
		out.Home[k] = v
	}
	for k, v := range r.Guest {
		out.Guest[k] = v
	}
	return out
}

// Substitutes returns the non-empty substitute names of side, sorted.
func (r Roster) Substitutes(side Side) []string {
	var names []string
	for _, c := range Codes(side) {
		if n := r.side(side)[SubSlot(c)]; n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// ResolveSubstitute maps a typed substitute name onto a registered substitute
// of side. Exact matches win; otherwise the closest fuzzy match is used. A
// query that matches no registered substitute is returned cleaned but
// otherwise unchanged.
func (r Roster) ResolveSubstitute(side Side, query string) string {
	q := CleanName(query)
	if q == "" {
		return q
	}
	candidates := r.Substitutes(side)
	for _, c := range candidates {
		if c == q {
			return c
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(q, candidates)
	if len(ranks) == 0 {
		return q
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// CleanName trims s and converts it to NFC so that the same name typed with
// precomposed or combining diacritics keys the same record.
func CleanName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
