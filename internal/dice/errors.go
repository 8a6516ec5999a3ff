package dice

// DiceError is a custom error type for dice errors
type DiceError string

// Error implements the error interface
func (e DiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnknownMode   DiceError = "unknown roll mode"
	ErrUnknownPolicy DiceError = "unknown extraction policy"
)
