package testutil

// FixedSessionGenerator generates the same draft session id every time.
//
// This keeps draft snapshots byte-identical across runs so they can be
// compared against golden files.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator returning id, or
// "test-session-default" when id is empty.
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSessionGenerator{id: id}
}

// NewSession returns the fixed session id.
func (g *FixedSessionGenerator) NewSession() string {
	return g.id
}
