package team

import (
	"fmt"

	"github.com/roach88/ttscore/internal/reject"
)

// Side is the home or guest team.
type Side string

const (
	Home  Side = "home"
	Guest Side = "guest"
)

// Valid reports whether s is Home or Guest.
func (s Side) Valid() bool {
	return s == Home || s == Guest
}

// ParseSide converts "home"/"guest" into a Side.
func ParseSide(s string) (Side, error) {
	side := Side(s)
	if !side.Valid() {
		return "", fmt.Errorf("unknown side %q: must be home or guest", s)
	}
	return side, nil
}

// Variant selects how many singles rounds are played.
type Variant string

const (
	ThreeRounds Variant = "3rounds"
	FourRounds  Variant = "4rounds"
)

// Rounds returns the number of singles rounds of v.
func (v Variant) Rounds() int {
	if v == ThreeRounds {
		return 3
	}
	return 4
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == ThreeRounds || v == FourRounds
}

const (
	// DefaultDoubles is the number of doubles rows of a new sheet.
	DefaultDoubles = 2

	// MaxDoubles bounds the configurable doubles count.
	MaxDoubles = 4

	// MaxSets is the number of set entries per row (best of five).
	MaxSets = 5

	// SetsToWinRow is the set count that decides a row.
	SetsToWinRow = 3

	// MinSubstitutionRound is the first singles round that allows a substitution.
	MinSubstitutionRound = 2
)

// Config determines the row layout of a sheet.
type Config struct {
	Variant Variant `json:"variant"`
	Doubles int     `json:"doublesCount"`
}

// DefaultConfig is four singles rounds preceded by two doubles.
func DefaultConfig() Config {
	return Config{Variant: FourRounds, Doubles: DefaultDoubles}
}

// Validate checks the variant and doubles count.
func (c Config) Validate() error {
	if !c.Variant.Valid() {
		return reject.Newf(reject.CodeInvalidArgument, "configure", "unknown variant %q", c.Variant)
	}
	if c.Doubles < 0 || c.Doubles > MaxDoubles {
		return reject.Newf(reject.CodeInvalidArgument, "configure", "doubles count must be 0..%d, got %d", MaxDoubles, c.Doubles)
	}
	return nil
}

// Meta is the descriptive header of a team match.
type Meta struct {
	Venue     string `json:"venue"`
	Date      string `json:"date"`
	HomeTeam  string `json:"teamHome"`
	GuestTeam string `json:"teamGuest"`
}
