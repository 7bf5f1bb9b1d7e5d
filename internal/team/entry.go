package team

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	shorthandPattern = regexp.MustCompile(`^[-+]?\d+$`)
	separatorPattern = regexp.MustCompile(`[:\-\s]+`)
)

// Entry is a parsed set score.
type Entry struct {
	Home  int
	Guest int

	// Text is the canonical form to store: "H:G" for shorthand input,
	// the trimmed input otherwise.
	Text string

	Shorthand bool
}

// ParseSetEntry parses a set score in full notation ("11:9", "11-9", "11 9")
// or shorthand notation ("7", "+12", "-9"): the magnitude is the loser's
// points and the sign the winner, positive for home. The shorthand winner has
// 11 points, or the loser's points + 2 from 10 on.
//
// ok is false for empty or malformed input.
func ParseSetEntry(raw string) (Entry, bool) {
	val := strings.TrimSpace(raw)
	if val == "" {
		return Entry{}, false
	}

	if shorthandPattern.MatchString(val) {
		n, err := strconv.Atoi(val)
		if err != nil {
			return Entry{}, false
		}
		loser := n
		if loser < 0 {
			loser = -loser
		}
		winner := 11
		if loser >= 10 {
			winner = loser + 2
		}
		e := Entry{Home: winner, Guest: loser, Shorthand: true}
		if strings.HasPrefix(val, "-") && n != 0 {
			e.Home, e.Guest = loser, winner
		}
		e.Text = fmt.Sprintf("%d:%d", e.Home, e.Guest)
		return e, true
	}

	parts := separatorPattern.Split(val, -1)
	if len(parts) != 2 {
		return Entry{}, false
	}
	home, err := strconv.Atoi(parts[0])
	if err != nil {
		return Entry{}, false
	}
	guest, err := strconv.Atoi(parts[1])
	if err != nil {
		return Entry{}, false
	}
	return Entry{Home: home, Guest: guest, Text: val}, true
}

// NormalizeSetEntry returns the text to store for raw: the canonical "H:G"
// form of shorthand input, the input unchanged otherwise.
func NormalizeSetEntry(raw string) string {
	if e, ok := ParseSetEntry(raw); ok && e.Shorthand {
		return e.Text
	}
	return raw
}
