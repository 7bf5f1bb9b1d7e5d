package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	s := newTestSheet(t)
	st := s.Statistics()

	assert.Equal(t, Totals{}, st.Matches)
	assert.Equal(t, Totals{}, st.Sets)
	assert.Equal(t, Totals{}, st.Points)
	assert.Len(t, st.Players[Home], 4)
	assert.Len(t, st.Players[Guest], 4)
	assert.Empty(t, st.Substitutes)
}

func TestStatistics_Totals(t *testing.T) {
	s := newTestSheet(t)

	enterRow(t, s, 1, "11:5", "11:9", "11:3")      // doubles, home 3:0
	enterRow(t, s, 3, "-5", "11:9", "-12", "9-11") // guest 1:3
	enterRow(t, s, 4, "11:8", "bad", "10:10")      // undecided 1:0

	st := s.Statistics()
	assert.Equal(t, Totals{Home: 1, Guest: 1}, st.Matches)
	assert.Equal(t, Totals{Home: 5, Guest: 3}, st.Sets)
	assert.Equal(t, Totals{Home: 33 + 37 + 21, Guest: 17 + 9 + 11 + 14 + 11 + 8 + 10}, st.Points)
	assert.Equal(t, "1:1", st.Matches.Ratio())

	// Doubles never credit players.
	assert.Equal(t, Record{Losses: 1}, st.Players[Home]["A"])
	assert.Equal(t, Record{Wins: 1}, st.Players[Guest]["X"])
	assert.Equal(t, Record{}, st.Players[Home]["B"])
}

func TestStatistics_SubstituteAttribution(t *testing.T) {
	s := newTestSheet(t)

	// Home B is substituted from match 7 on (matches 7, 14, 17).
	_, err := s.ToggleSubstitution(7, Home)
	require.NoError(t, err)
	require.NoError(t, s.SetSubstituteName(7, Home, "Malý"))

	// Home A (match 10, A-U) is replaced by the same substitute.
	_, err = s.ToggleSubstitution(10, Home)
	require.NoError(t, err)
	require.NoError(t, s.SetSubstituteName(10, Home, "Malý"))

	enterRow(t, s, 4, "5", "5", "5")     // B-Y, regular B wins
	enterRow(t, s, 7, "5", "5", "5")     // Malý for B wins
	enterRow(t, s, 10, "-5", "-5", "-5") // Malý for A loses
	enterRow(t, s, 14, "5", "5", "5")    // B-U, Malý for B wins
	enterRow(t, s, 13, "5", "5", "5")    // A-Z, A substituted since match 10

	st := s.Statistics()
	assert.Equal(t, Record{Wins: 1}, st.Players[Home]["B"])
	assert.Equal(t, Record{}, st.Players[Home]["A"])

	require.Len(t, st.Substitutes, 1)
	sub := st.Substitutes[0]
	assert.Equal(t, Home, sub.Side)
	assert.Equal(t, "Malý", sub.Name)
	assert.Equal(t, []string{"A", "B"}, sub.Replaced)
	assert.Equal(t, Record{Wins: 3, Losses: 1}, sub.Record)

	// Guests are credited to their regular players.
	assert.Equal(t, Record{Losses: 1}, st.Players[Guest]["Y"])
	assert.Equal(t, Record{Losses: 1}, st.Players[Guest]["X"])
	assert.Equal(t, Record{Wins: 1, Losses: 1}, st.Players[Guest]["U"])
	assert.Equal(t, Record{Losses: 1}, st.Players[Guest]["Z"])
}

func TestStatistics_SubstitutedWithoutNameCreditsNobody(t *testing.T) {
	s := newTestSheet(t)
	_, err := s.ToggleSubstitution(7, Guest)
	require.NoError(t, err)
	enterRow(t, s, 7, "5", "5", "5")

	st := s.Statistics()
	assert.Equal(t, Record{}, st.Players[Guest]["X"])
	assert.Empty(t, st.Substitutes)
	assert.Equal(t, Record{Wins: 1}, st.Players[Home]["B"])
}

func TestStatistics_SubstituteOrder(t *testing.T) {
	s := newTestSheet(t)
	for _, tc := range []struct {
		match int
		side  Side
		name  string
	}{
		{8, Guest, "Zeman"},
		{9, Guest, "Čierny"},
		{7, Home, "Šimko"},
		{10, Home, "Cibula"},
	} {
		_, err := s.ToggleSubstitution(tc.match, tc.side)
		require.NoError(t, err)
		require.NoError(t, s.SetSubstituteName(tc.match, tc.side, tc.name))
		enterRow(t, s, tc.match, "5", "5", "5")
	}

	var names []string
	for _, r := range s.Statistics().Substitutes {
		names = append(names, r.Name)
	}
	// Slovak collation puts "Č" after "C" and "Š" after "S".
	assert.Equal(t, []string{"Cibula", "Šimko", "Čierny", "Zeman"}, names)
}
