package extraction

import "context"

// Service defines the interface for turning dice rolls into bits
type Service interface {
	// Run reads rolls from a stream and writes the extracted bits to a sink
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)

	// Convert extracts the bits of a complete roll transcript held in memory
	Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error)

	// ListRuns returns the most recent run summaries from the run ledger
	ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error)
}
