package bitbuf

const (
	// DefaultWordWidth is the bit width of one storage word
	DefaultWordWidth = 32

	// DefaultCapacityWords is the number of storage words
	DefaultCapacityWords = 32
)

// Config holds configuration for an accumulator
type Config struct {
	// CapacityWords is the fixed number of storage words
	CapacityWords int

	// WordWidth is the bit width of one word: 8, 16, 32 or 64
	WordWidth uint
}
