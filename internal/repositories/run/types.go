package run

import "github.com/KirkDiggler/dicebits/internal/models"

// SaveRunInput contains parameters for saving a run
type SaveRunInput struct {
	Run *models.RunSummary
}

// GetRunInput contains parameters for retrieving a run
type GetRunInput struct {
	RunID string
}

// ListRunsInput contains parameters for listing runs
type ListRunsInput struct {
	// Limit caps the number of runs returned; zero means DefaultListLimit
	Limit int
}

// ListRunsOutput contains the result of listing runs
type ListRunsOutput struct {
	Runs []*models.RunSummary
}
