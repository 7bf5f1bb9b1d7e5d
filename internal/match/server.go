package match

// ServerFor returns the side serving at the given score when first served
// the opening point of the set.
//
// Before both sides reach DeuceScore the serve changes every two points;
// from DeuceScore-all on it changes every point.
func ServerFor(first Side, score0, score1 int) Side {
	total := score0 + score1
	var offset int
	if score0 >= DeuceScore && score1 >= DeuceScore {
		offset = total - 2*DeuceScore
	} else {
		offset = total / 2
	}
	return Side((int(first) + offset) % 2)
}

// SetDecided reports whether a set standing at score0:score1 can be closed.
func SetDecided(score0, score1 int) bool {
	high, diff := score0, score0-score1
	if score1 > high {
		high = score1
	}
	if diff < 0 {
		diff = -diff
	}
	return high >= PointsToWinSet && diff >= MinSetLead
}

// SetsToWin converts a best-of-N match length into the number of sets a side
// must win.
func SetsToWin(bestOf int) int {
	return (bestOf + 1) / 2
}
