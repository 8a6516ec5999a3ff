package extraction

import (
	"io"

	"github.com/KirkDiggler/dicebits/internal/bitbuf"
	"github.com/KirkDiggler/dicebits/internal/common/clock"
	"github.com/KirkDiggler/dicebits/internal/common/uuid"
	"github.com/KirkDiggler/dicebits/internal/models"
	runRepo "github.com/KirkDiggler/dicebits/internal/repositories/run"
)

// Config holds configuration for the extraction service
type Config struct {
	// Number of accumulator words; defaults to bitbuf.DefaultCapacityWords
	CapacityWords int

	// Accumulator word width in bits; defaults to bitbuf.DefaultWordWidth
	WordWidth uint

	// Optional run ledger; summaries are not recorded when nil
	RunRepo runRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// RunInput contains parameters for an extraction run
type RunInput struct {
	// Input supplies the typed rolls
	Input io.Reader

	// Output receives the flushed words
	Output bitbuf.Sink

	// Mode is how rolls are read
	Mode models.Mode

	// Policy is how excess outcomes are handled
	Policy models.Policy
}

// RunOutput contains the result of an extraction run
type RunOutput struct {
	// Summary holds the run statistics, including the true bit count
	Summary *models.RunSummary
}

// ConvertInput contains parameters for converting a roll transcript
type ConvertInput struct {
	// Rolls is the transcript, formatted as Run expects
	Rolls string

	Mode   models.Mode
	Policy models.Policy
}

// ConvertOutput contains the result of converting a roll transcript
type ConvertOutput struct {
	// Bits holds the flushed words
	Bits []byte

	Summary *models.RunSummary
}

// ListRunsInput contains parameters for listing runs
type ListRunsInput struct {
	Limit int
}

// ListRunsOutput contains the result of listing runs
type ListRunsOutput struct {
	Runs []*models.RunSummary
}
