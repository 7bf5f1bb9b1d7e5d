package team

// HomeCodes are the home player codes in base rotation order.
var HomeCodes = []string{"A", "B", "C", "D"}

// GuestCodes are the guest player codes in fixed order.
var GuestCodes = []string{"X", "Y", "Z", "U"}

// Slot is one singles pairing of the rotation table.
type Slot struct {
	HomeCode  string `json:"home"`
	GuestCode string `json:"guest"`
	Round     int    `json:"round"`
}

// Rotation returns the singles pairing schedule for rounds rounds (3 or 4).
//
// In round r (1-based) the home order is A B C D shifted left by r-1 while the
// guest order stays X Y Z U, so over four rounds every home player meets every
// guest player exactly once. Three rounds are the first twelve pairings.
func Rotation(rounds int) []Slot {
	if rounds < 0 {
		rounds = 0
	}
	if rounds > len(HomeCodes) {
		rounds = len(HomeCodes)
	}
	slots := make([]Slot, 0, rounds*len(GuestCodes))
	for r := 0; r < rounds; r++ {
		for i, guest := range GuestCodes {
			slots = append(slots, Slot{
				HomeCode:  HomeCodes[(i+r)%len(HomeCodes)],
				GuestCode: guest,
				Round:     r + 1,
			})
		}
	}
	return slots
}

// Layout generates the rows of cfg: doubles first, then the singles rotation,
// numbered from 1.
func Layout(cfg Config) []Row {
	slots := Rotation(cfg.Variant.Rounds())
	rows := make([]Row, 0, cfg.Doubles+len(slots))
	n := 1
	for i := 0; i < cfg.Doubles; i++ {
		rows = append(rows, Row{Number: n, Kind: Doubles})
		n++
	}
	for _, s := range slots {
		rows = append(rows, Row{
			Number:    n,
			Kind:      Singles,
			Round:     s.Round,
			HomeCode:  s.HomeCode,
			GuestCode: s.GuestCode,
		})
		n++
	}
	return rows
}
