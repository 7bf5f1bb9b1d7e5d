package team

import "fmt"

// Kind distinguishes doubles rows from singles rows.
type Kind string

const (
	Doubles Kind = "doubles"
	Singles Kind = "singles"
)

// Row is one individual game of the team match.
type Row struct {
	Number int  `json:"number"`
	Kind   Kind `json:"kind"`
	Round  int  `json:"round"`

	// HomeCode and GuestCode are the rotation codes of a singles row.
	HomeCode  string `json:"homeCode,omitempty"`
	GuestCode string `json:"guestCode,omitempty"`

	// HomeLabel and GuestLabel are the free-text pairs of a doubles row.
	HomeLabel  string `json:"homeLabel,omitempty"`
	GuestLabel string `json:"guestLabel,omitempty"`

	// HomeSub and GuestSub are the substitute names entered for a singles row.
	HomeSub  string `json:"homeSub,omitempty"`
	GuestSub string `json:"guestSub,omitempty"`

	Sets [MaxSets]string `json:"sets"`
}

// Code returns the rotation code of side, empty for doubles rows.
func (r Row) Code(side Side) string {
	if side == Home {
		return r.HomeCode
	}
	return r.GuestCode
}

// SubName returns the substitute name entered for side.
func (r Row) SubName(side Side) string {
	if side == Home {
		return r.HomeSub
	}
	return r.GuestSub
}

func (r *Row) setSubName(side Side, name string) {
	if side == Home {
		r.HomeSub = name
	} else {
		r.GuestSub = name
	}
}

// SetsResult is the number of sets each side won in a row.
type SetsResult struct {
	Home  int `json:"home"`
	Guest int `json:"guest"`
}

// String formats the result as "H:G".
func (r SetsResult) String() string {
	return fmt.Sprintf("%d:%d", r.Home, r.Guest)
}

// Winner returns the side that reached SetsToWinRow sets, if any.
func (r SetsResult) Winner() (Side, bool) {
	switch {
	case r.Home >= SetsToWinRow:
		return Home, true
	case r.Guest >= SetsToWinRow:
		return Guest, true
	}
	return "", false
}

// RowSetsResult counts the sets won per side over the valid entries of row.
// Equal scores count for neither side. ok is false when no entry parses.
func RowSetsResult(row Row) (res SetsResult, ok bool) {
	for _, raw := range row.Sets {
		e, valid := ParseSetEntry(raw)
		if !valid {
			continue
		}
		ok = true
		switch {
		case e.Home > e.Guest:
			res.Home++
		case e.Guest > e.Home:
			res.Guest++
		}
	}
	return res, ok
}

// RowWinner returns the side that won row, if the row is decided.
func RowWinner(row Row) (Side, bool) {
	res, ok := RowSetsResult(row)
	if !ok {
		return "", false
	}
	return res.Winner()
}
