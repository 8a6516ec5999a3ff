package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/dicebits/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	runKeyPrefix = "run:"
	runsIndexKey = "runs"

	// DefaultListLimit is the number of runs ListRuns returns when no limit is given
	DefaultListLimit = 20
)

// ErrRunNotFound is returned when a run is not found
var ErrRunNotFound = errors.New("run not found")

// Config holds configuration for the Redis run repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed run repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveRun persists a run summary to Redis and indexes it by finish time
func (r *redisRepository) SaveRun(ctx context.Context, input *SaveRunInput) error {
	if input == nil || input.Run == nil {
		return errors.New("input and run cannot be nil")
	}

	if input.Run.ID == "" {
		return errors.New("run ID cannot be empty")
	}

	runJSON, err := json.Marshal(input.Run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, runKeyPrefix+input.Run.ID, runJSON, 0)
	pipe.ZAdd(ctx, runsIndexKey, redis.Z{
		Score:  float64(input.Run.FinishedAt.UnixNano()),
		Member: input.Run.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// GetRun retrieves a run summary by ID from Redis
func (r *redisRepository) GetRun(ctx context.Context, input *GetRunInput) (*models.RunSummary, error) {
	if input == nil || input.RunID == "" {
		return nil, errors.New("input and run ID cannot be empty")
	}

	runJSON, err := r.client.Get(ctx, runKeyPrefix+input.RunID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run models.RunSummary
	if err := json.Unmarshal([]byte(runJSON), &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}

	return &run, nil
}

// ListRuns retrieves the most recently finished runs from Redis
func (r *redisRepository) ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error) {
	limit := DefaultListLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	ids, err := r.client.ZRevRange(ctx, runsIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	if len(ids) == 0 {
		return &ListRunsOutput{Runs: []*models.RunSummary{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = runKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}

	runs := make([]*models.RunSummary, 0, len(values))
	for _, value := range values {
		// Index entries can outlive their run key
		runJSON, ok := value.(string)
		if !ok {
			continue
		}

		var run models.RunSummary
		if err := json.Unmarshal([]byte(runJSON), &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		runs = append(runs, &run)
	}

	return &ListRunsOutput{Runs: runs}, nil
}
