package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoster_Slots(t *testing.T) {
	r := NewRoster()
	assert.Len(t, r.Home, 8)
	assert.Len(t, r.Guest, 8)
	assert.Contains(t, r.Home, "subD")
	assert.Contains(t, r.Guest, "subU")
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot(Home, "A"))
	assert.True(t, ValidSlot(Home, "subC"))
	assert.True(t, ValidSlot(Guest, "U"))
	assert.False(t, ValidSlot(Guest, "A"))
	assert.False(t, ValidSlot(Home, "subX"))
	assert.False(t, ValidSlot(Home, "E"))
}

func TestResolveSubstitute(t *testing.T) {
	r := NewRoster()
	r.Home["subA"] = "Peter Malý"
	r.Home["subB"] = "Pavol Kráľ"
	r.Guest["subX"] = "Ján Horváth"

	tests := []struct {
		name  string
		side  Side
		query string
		want  string
	}{
		{"exact", Home, "Pavol Kráľ", "Pavol Kráľ"},
		{"fuzzy prefix", Home, "peter", "Peter Malý"},
		{"fuzzy without diacritics", Home, "kral", "Pavol Kráľ"},
		{"other side not considered", Home, "horvath", "horvath"},
		{"guest", Guest, "horv", "Ján Horváth"},
		{"unknown kept", Home, " Nový Hráč ", "Nový Hráč"},
		{"empty", Home, "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveSubstitute(tt.side, tt.query))
		})
	}
}

func TestCleanName_NFC(t *testing.T) {
	decomposed := "Kra\u0301l"
	assert.Equal(t, "Kr\u00e1l", CleanName("  "+decomposed+" "))
	assert.Equal(t, CleanName("Kr\u00e1l"), CleanName(decomposed))
}
