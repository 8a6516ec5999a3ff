package dice

// Outcome is the result of an accepted roll
type Outcome struct {
	// Value holds the extracted bits in its low Entropy bits
	Value uint64

	// Entropy is the number of valid low-order bits in Value
	Entropy uint
}

// Roll is one physical roll as read from the input
type Roll struct {
	// Top is the face character on top, '1'..'6'
	Top byte

	// Side is the face character facing the reader in orientation mode.
	// It is ignored in single mode.
	Side byte
}
