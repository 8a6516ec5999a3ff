package models

// Mode describes how a physical roll is read
type Mode string

const (
	// ModeSingle reads one face character per roll
	ModeSingle Mode = "single"

	// ModeOrientation reads a top face and a side face per roll, for a die
	// that settled along one edge of a box
	ModeOrientation Mode = "orientation"
)

// Policy describes how outcomes that do not fit a power of two are handled
type Policy string

const (
	// PolicyDiscard rejects excess outcomes so the output is unbiased
	PolicyDiscard Policy = "discard"

	// PolicyGreedy assigns every outcome a code so no roll is wasted
	PolicyGreedy Policy = "greedy"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeSingle || m == ModeOrientation
}

// Valid reports whether p is a known policy
func (p Policy) Valid() bool {
	return p == PolicyDiscard || p == PolicyGreedy
}
