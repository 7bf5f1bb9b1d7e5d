package team

import "fmt"

// TeamScore is a count of row wins per side.
type TeamScore struct {
	Home  int `json:"home"`
	Guest int `json:"guest"`
}

// String formats the score as "H:G".
func (t TeamScore) String() string {
	return fmt.Sprintf("%d:%d", t.Home, t.Guest)
}

// Zero reports whether neither side has won a row.
func (t TeamScore) Zero() bool {
	return t.Home == 0 && t.Guest == 0
}

// SetsResult returns the sets won per side in match; ok is false when the
// row has no valid entry.
func (s *Sheet) SetsResult(match int) (SetsResult, bool) {
	row, ok := s.Row(match)
	if !ok {
		return SetsResult{}, false
	}
	return RowSetsResult(row)
}

// Winner returns the side that won match, if decided.
func (s *Sheet) Winner(match int) (Side, bool) {
	row, ok := s.Row(match)
	if !ok {
		return "", false
	}
	return RowWinner(row)
}

// runningScores walks the rows in order and returns the cumulative team
// score after each row.
func (s *Sheet) runningScores() []TeamScore {
	out := make([]TeamScore, len(s.rows))
	var total TeamScore
	for i, row := range s.rows {
		if w, ok := RowWinner(row); ok {
			if w == Home {
				total.Home++
			} else {
				total.Guest++
			}
		}
		out[i] = total
	}
	return out
}

// RunningScore returns the cumulative team score after match. ok is false
// (displayed as "-") when the row has no valid entry or no row up to and
// including it has been decided.
func (s *Sheet) RunningScore(match int) (TeamScore, bool) {
	i, err := s.index(match)
	if err != nil {
		return TeamScore{}, false
	}
	if _, ok := RowSetsResult(s.rows[i]); !ok {
		return TeamScore{}, false
	}
	score := s.runningScores()[i]
	if score.Zero() {
		return TeamScore{}, false
	}
	return score, true
}

// RunningScoreText formats RunningScore, "-" when there is none.
func (s *Sheet) RunningScoreText(match int) string {
	if score, ok := s.RunningScore(match); ok {
		return score.String()
	}
	return "-"
}

// TeamScore returns the number of rows won per side.
func (s *Sheet) TeamScore() TeamScore {
	scores := s.runningScores()
	if len(scores) == 0 {
		return TeamScore{}
	}
	return scores[len(scores)-1]
}
