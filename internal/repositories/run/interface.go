package run

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dicebits/internal/repositories/run Repository

import (
	"context"

	"github.com/KirkDiggler/dicebits/internal/models"
)

// Repository defines the interface for run summary persistence
type Repository interface {
	// SaveRun persists a run summary
	SaveRun(ctx context.Context, input *SaveRunInput) error

	// GetRun retrieves a run summary by ID
	GetRun(ctx context.Context, input *GetRunInput) (*models.RunSummary, error)

	// ListRuns retrieves the most recently finished runs, newest first
	ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error)
}
