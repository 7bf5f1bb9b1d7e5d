package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ttscore/internal/reject"
)

// With two doubles and four rounds, home player B plays matches 4, 7, 14 and 17.
func newTestTracker() *Tracker {
	return NewTracker(Layout(Config{Variant: FourRounds, Doubles: 2}))
}

func activeRows(t *Tracker, side Side) []int {
	var out []int
	for n := 1; n <= 18; n++ {
		if t.IsActive(n, side) {
			out = append(out, n)
		}
	}
	return out
}

func TestTracker_IsActiveWithoutEntry(t *testing.T) {
	tr := newTestTracker()
	assert.False(t, tr.IsActive(7, Home))
	assert.False(t, tr.IsActive(100, Guest))
}

func TestTracker_CascadesForward(t *testing.T) {
	tr := newTestTracker()

	on, err := tr.Toggle(7, Home)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []int{7, 14, 17}, activeRows(tr, Home))
	assert.Empty(t, activeRows(tr, Guest))

	// Match 4 features B as well but lies before match 7.
	assert.False(t, tr.IsActive(4, Home))
}

func TestTracker_ToggleOffRevertsSameRows(t *testing.T) {
	tr := newTestTracker()

	_, err := tr.Toggle(7, Guest)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 11, 15}, activeRows(tr, Guest))

	off, err := tr.Toggle(7, Guest)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, activeRows(tr, Guest))
}

func TestTracker_LaterToggleOnlyCascadesFromThere(t *testing.T) {
	tr := newTestTracker()

	_, err := tr.Toggle(14, Home)
	require.NoError(t, err)
	assert.Equal(t, []int{14, 17}, activeRows(tr, Home))
}

func TestTracker_LastCascadeWins(t *testing.T) {
	tr := newTestTracker()

	// Manual substitution from match 14 on.
	_, err := tr.Toggle(14, Home)
	require.NoError(t, err)

	// An earlier cascade switched on and off again overwrites it.
	_, err = tr.Toggle(7, Home)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 14, 17}, activeRows(tr, Home))

	_, err = tr.Toggle(7, Home)
	require.NoError(t, err)
	assert.Empty(t, activeRows(tr, Home))
}

func TestTracker_Forbidden(t *testing.T) {
	tr := newTestTracker()

	tests := []struct {
		name  string
		match int
		side  Side
		code  reject.Code
	}{
		{"doubles row", 1, Home, reject.CodeSubstitutionForbidden},
		{"round one", 3, Guest, reject.CodeSubstitutionForbidden},
		{"unknown match", 40, Home, reject.CodeSubstitutionForbidden},
		{"unknown side", 7, Side("left"), reject.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Toggle(tt.match, tt.side)
			assert.True(t, reject.Has(err, tt.code), "got %v", err)
		})
	}
	assert.Empty(t, tr.Snapshot())
}

func TestTracker_RestoreDropsUnknownRows(t *testing.T) {
	tr := newTestTracker()
	tr.Restore(map[int]Flags{
		1:  {Home: true},
		9:  {Guest: true},
		99: {Home: true},
	})

	assert.Equal(t, map[int]Flags{9: {Guest: true}}, tr.Snapshot())
	// Restore does not cascade.
	assert.Equal(t, []int{9}, activeRows(tr, Guest))
}
