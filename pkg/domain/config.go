package domain

const (
	// DefaultBlank fills every tape cell that was never written.
	DefaultBlank = "_"
	// DefaultWildcard matches any symbol and, on the write side, keeps the cell as is.
	DefaultWildcard = "*"
)

// Config carries the reserved symbols and canonical states of one machine
// configuration. It is a plain value: copy it freely, never mutate a shared one.
type Config struct {
	Blank    string `json:"blank" yaml:"blank"`
	Wildcard string `json:"wildcard" yaml:"wildcard"`
	Start    State  `json:"start" yaml:"start"`
	End      State  `json:"end" yaml:"end"`
}

// DefaultConfig returns the conventional configuration: "_" blank, "*" wildcard,
// q_start and q_end.
func DefaultConfig() Config {
	return Config{
		Blank:    DefaultBlank,
		Wildcard: DefaultWildcard,
		Start:    StartState("q_start"),
		End:      EndState("q_end"),
	}
}

// NewTape creates a tape filled with this configuration's blank symbol.
func (c Config) NewTape(input ...string) *Tape {
	return NewTape(c.Blank, input...)
}

// NewHeads returns n heads parked at position 0.
func NewHeads(n int) []*Head {
	heads := make([]*Head, n)
	for i := range heads {
		heads[i] = &Head{}
	}
	return heads
}
