package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ttscore/internal/reject"
)

func newTestSheet(t *testing.T) *Sheet {
	t.Helper()
	s, err := NewSheet(DefaultConfig())
	require.NoError(t, err)
	return s
}

func enterRow(t *testing.T, s *Sheet, match int, entries ...string) {
	t.Helper()
	for i, e := range entries {
		_, err := s.EnterSet(match, i+1, e)
		require.NoError(t, err)
	}
}

func TestNewSheet_Validates(t *testing.T) {
	_, err := NewSheet(Config{Variant: "5rounds", Doubles: 2})
	assert.True(t, reject.Has(err, reject.CodeInvalidArgument))

	_, err = NewSheet(Config{Variant: FourRounds, Doubles: MaxDoubles + 1})
	assert.True(t, reject.Has(err, reject.CodeInvalidArgument))

	s, err := NewSheet(Config{Variant: ThreeRounds, Doubles: 0})
	require.NoError(t, err)
	assert.Len(t, s.Rows(), 12)
}

func TestSheet_EndToEndRowThree(t *testing.T) {
	s := newTestSheet(t)
	require.Len(t, s.Rows(), 18)

	enterRow(t, s, 3, "11:5", "7:11", "11:5", "11:7")

	res, ok := s.SetsResult(3)
	require.True(t, ok)
	assert.Equal(t, "3:1", res.String())

	w, ok := s.Winner(3)
	require.True(t, ok)
	assert.Equal(t, Home, w)

	assert.Equal(t, "-", s.RunningScoreText(1))
	assert.Equal(t, "-", s.RunningScoreText(2))
	assert.Equal(t, "1:0", s.RunningScoreText(3))
	assert.Equal(t, "-", s.RunningScoreText(4))
	assert.Equal(t, TeamScore{Home: 1}, s.TeamScore())
}

func TestSheet_EnterSet(t *testing.T) {
	s := newTestSheet(t)

	text, err := s.EnterSet(5, 1, "-8")
	require.NoError(t, err)
	assert.Equal(t, "8:11", text)

	text, err = s.EnterSet(5, 2, "nonsense")
	require.NoError(t, err)
	assert.Equal(t, "nonsense", text)

	row, ok := s.Row(5)
	require.True(t, ok)
	assert.Equal(t, "8:11", row.Sets[0])
	assert.Equal(t, "nonsense", row.Sets[1])

	_, err = s.EnterSet(19, 1, "7")
	assert.True(t, reject.Has(err, reject.CodeUnknownMatch))
	_, err = s.EnterSet(5, 6, "7")
	assert.True(t, reject.Has(err, reject.CodeInvalidArgument))
	_, err = s.EnterSet(5, 0, "7")
	assert.True(t, reject.Has(err, reject.CodeInvalidArgument))
}

func TestSheet_RunningScore(t *testing.T) {
	s := newTestSheet(t)

	enterRow(t, s, 1, "5", "5", "5")         // home
	enterRow(t, s, 2, "-5", "-5")            // undecided 0:2
	enterRow(t, s, 3, "-5", "-5", "-5")      // guest
	enterRow(t, s, 4, "-3", "-3", "4", "-9") // guest 1:3

	assert.Equal(t, "1:0", s.RunningScoreText(1))
	assert.Equal(t, "1:0", s.RunningScoreText(2))
	assert.Equal(t, "1:1", s.RunningScoreText(3))
	assert.Equal(t, "1:2", s.RunningScoreText(4))
	assert.Equal(t, "-", s.RunningScoreText(5))
	assert.Equal(t, TeamScore{Home: 1, Guest: 2}, s.TeamScore())
}

func TestSheet_RunningScoreUndecidedFirstRow(t *testing.T) {
	s := newTestSheet(t)
	enterRow(t, s, 1, "5", "5")

	_, ok := s.RunningScore(1)
	assert.False(t, ok)
	assert.Equal(t, "-", s.RunningScoreText(1))
}

func TestSheet_Configure_DiscardsInput(t *testing.T) {
	s := newTestSheet(t)
	require.NoError(t, s.SetPlayer(Home, "A", "Novák"))
	enterRow(t, s, 3, "5", "5", "5")
	_, err := s.ToggleSubstitution(7, Home)
	require.NoError(t, err)

	require.NoError(t, s.Configure(Config{Variant: ThreeRounds, Doubles: 1}))

	assert.Len(t, s.Rows(), 13)
	assert.Empty(t, s.Substitutions())
	assert.Equal(t, TeamScore{}, s.TeamScore())
	assert.Equal(t, "Novák", s.Roster().Name(Home, "A"))

	assert.Error(t, s.Configure(Config{Variant: FourRounds, Doubles: -1}))
	assert.Len(t, s.Rows(), 13)
}

func TestSheet_SubstituteNamePropagatesForward(t *testing.T) {
	s := newTestSheet(t)

	require.NoError(t, s.SetSubstituteName(7, Home, " Peter Malý "))

	for _, n := range []int{7, 14, 17} {
		row, _ := s.Row(n)
		assert.Equal(t, "Peter Malý", row.HomeSub, "match %d", n)
	}
	row, _ := s.Row(4)
	assert.Empty(t, row.HomeSub)

	assert.True(t, reject.Has(s.SetSubstituteName(1, Home, "x"), reject.CodeSubstitutionForbidden))
}

func TestSheet_Labels(t *testing.T) {
	s := newTestSheet(t)
	require.NoError(t, s.SetPlayer(Home, "B", "Novák"))
	require.NoError(t, s.SetDoublesLabels(1, "Novák/Kováč", "Horváth/Varga"))

	assert.Equal(t, "Novák/Kováč", s.Label(1, Home))
	assert.Equal(t, "Horváth/Varga", s.Label(1, Guest))
	assert.Equal(t, "Novák", s.Label(7, Home))
	assert.Equal(t, "X", s.Label(7, Guest))

	_, err := s.ToggleSubstitution(7, Home)
	require.NoError(t, err)
	assert.Equal(t, "(B)", s.Label(7, Home))

	require.NoError(t, s.SetSubstituteName(7, Home, "Malý"))
	assert.Equal(t, "Malý (B)", s.Label(7, Home))
	assert.Equal(t, "Malý (B)", s.Label(17, Home))

	assert.Error(t, s.SetDoublesLabels(3, "a", "b"))
}

func TestSheet_SetPlayer(t *testing.T) {
	s := newTestSheet(t)

	require.NoError(t, s.SetPlayer(Guest, "subZ", "Ďurica"))
	assert.Equal(t, "Ďurica", s.Roster().Name(Guest, "subZ"))

	assert.True(t, reject.Has(s.SetPlayer(Home, "X", "wrong side"), reject.CodeInvalidArgument))
	assert.True(t, reject.Has(s.SetPlayer(Guest, "subA", "wrong side"), reject.CodeInvalidArgument))
}

func TestSheet_SnapshotRestore(t *testing.T) {
	s := newTestSheet(t)
	s.SetSession("session-1")
	s.SetMeta(Meta{Venue: "Senec", Date: "2026-10-18", HomeTeam: "TTC Senec", GuestTeam: "MSK Malacky"})
	require.NoError(t, s.SetPlayer(Home, "A", "Novák"))
	require.NoError(t, s.SetDoublesLabels(2, "a/b", "x/y"))
	enterRow(t, s, 3, "5", "5", "5")
	_, err := s.ToggleSubstitution(8, Guest)
	require.NoError(t, err)
	require.NoError(t, s.SetSubstituteName(8, Guest, "Kráľ"))

	restored, err := Restore(s.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assert.Equal(t, s.Statistics(), restored.Statistics())
	assert.Equal(t, "session-1", restored.Session())
	assert.Equal(t, "Kráľ (Y)", restored.Label(8, Guest))
}

func TestRestore_InvalidConfig(t *testing.T) {
	_, err := Restore(Snapshot{Variant: "bogus"})
	assert.Error(t, err)
}
