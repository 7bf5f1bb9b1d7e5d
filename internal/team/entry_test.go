package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSetEntry(t *testing.T) {
	tests := []struct {
		raw       string
		ok        bool
		home      int
		guest     int
		text      string
		shorthand bool
	}{
		{raw: "7", ok: true, home: 11, guest: 7, text: "11:7", shorthand: true},
		{raw: "+12", ok: true, home: 14, guest: 12, text: "14:12", shorthand: true},
		{raw: "-11", ok: true, home: 11, guest: 13, text: "11:13", shorthand: true},
		{raw: "-9", ok: true, home: 9, guest: 11, text: "9:11", shorthand: true},
		{raw: "10", ok: true, home: 12, guest: 10, text: "12:10", shorthand: true},
		{raw: "0", ok: true, home: 11, guest: 0, text: "11:0", shorthand: true},
		{raw: "-0", ok: true, home: 11, guest: 0, text: "11:0", shorthand: true},
		{raw: " 3 ", ok: true, home: 11, guest: 3, text: "11:3", shorthand: true},
		{raw: "11:9", ok: true, home: 11, guest: 9, text: "11:9"},
		{raw: "11-9", ok: true, home: 11, guest: 9, text: "11-9"},
		{raw: "11 9", ok: true, home: 11, guest: 9, text: "11 9"},
		{raw: "9 :- 11", ok: true, home: 9, guest: 11, text: "9 :- 11"},
		{raw: "10:10", ok: true, home: 10, guest: 10, text: "10:10"},
		{raw: "", ok: false},
		{raw: "   ", ok: false},
		{raw: "abc", ok: false},
		{raw: "11:x", ok: false},
		{raw: "11:9:7", ok: false},
		{raw: "-11:9", ok: false},
		{raw: "+", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			e, ok := ParseSetEntry(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.home, e.Home)
			assert.Equal(t, tt.guest, e.Guest)
			assert.Equal(t, tt.text, e.Text)
			assert.Equal(t, tt.shorthand, e.Shorthand)
		})
	}
}

func TestNormalizeSetEntry(t *testing.T) {
	assert.Equal(t, "11:7", NormalizeSetEntry("7"))
	assert.Equal(t, "14:12", NormalizeSetEntry("+12"))
	assert.Equal(t, "11:9", NormalizeSetEntry("11:9"))
	assert.Equal(t, "11-9", NormalizeSetEntry("11-9"))
	assert.Equal(t, "abc", NormalizeSetEntry("abc"))

	// Normalized text parses back to the same score.
	e, ok := ParseSetEntry(NormalizeSetEntry("-11"))
	assert.True(t, ok)
	assert.Equal(t, 11, e.Home)
	assert.Equal(t, 13, e.Guest)
	assert.False(t, e.Shorthand)
}

func TestRowSetsResult(t *testing.T) {
	row := Row{Sets: [MaxSets]string{"11:5", "garbage", "10:10", "9:11", ""}}
	res, ok := RowSetsResult(row)
	assert.True(t, ok)
	assert.Equal(t, SetsResult{Home: 1, Guest: 1}, res)
	_, decided := res.Winner()
	assert.False(t, decided)

	_, ok = RowSetsResult(Row{Sets: [MaxSets]string{"x", "", "", "", ""}})
	assert.False(t, ok)
}
