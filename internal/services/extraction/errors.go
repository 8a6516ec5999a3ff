package extraction

// ExtractionError is a custom error type for extraction errors
type ExtractionError string

// Error implements the error interface
func (e ExtractionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        ExtractionError = "config cannot be nil"
	ErrNilClock         ExtractionError = "clock cannot be nil"
	ErrNilUUIDGenerator ExtractionError = "UUID generator cannot be nil"
	ErrNilInput         ExtractionError = "input cannot be nil"
	ErrNilReader        ExtractionError = "roll reader cannot be nil"
	ErrNilOutput        ExtractionError = "output sink cannot be nil"
	ErrNoRunRepo        ExtractionError = "run ledger is not configured"
)
