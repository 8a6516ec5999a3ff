package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/KirkDiggler/dicebits/internal/bitbuf"
	"github.com/KirkDiggler/dicebits/internal/common/clock"
	"github.com/KirkDiggler/dicebits/internal/common/uuid"
	"github.com/KirkDiggler/dicebits/internal/config"
	"github.com/KirkDiggler/dicebits/internal/dice"
	runRepo "github.com/KirkDiggler/dicebits/internal/repositories/run"
	"github.com/KirkDiggler/dicebits/internal/services/extraction"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The run ledger is optional and never sees extracted bits
	var runRepository runRepo.Repository
	closeRedis := func() {}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		closeRedis = func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis client: %v", err)
			}
		}
		defer closeRedis()

		runRepository, err = runRepo.NewRedis(&runRepo.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			closeRedis()
			log.Fatalf("Failed to create run repository: %v", err)
		}
	}

	svc, err := extraction.New(&extraction.Config{
		CapacityWords: cfg.CapacityWords,
		WordWidth:     cfg.WordWidth,
		RunRepo:       runRepository,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		closeRedis()
		log.Fatalf("Failed to create extraction service: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ListRuns > 0 {
		if err := listRuns(ctx, svc, cfg.ListRuns); err != nil {
			log.Printf("Failed to list runs: %v", err)
			stop()
			closeRedis()
			os.Exit(1)
		}
		return
	}

	var input io.Reader = os.Stdin
	if cfg.Simulate > 0 {
		log.Printf("WARNING: %d simulated rolls; the output is not physical entropy", cfg.Simulate)
		roller := dice.NewRoller(&dice.Config{Seed: cfg.Seed})
		input = strings.NewReader(roller.Transcript(cfg.Mode, cfg.Simulate))
	}

	output, closeOutput, err := openOutput(cfg.Output)
	if err != nil {
		stop()
		closeRedis()
		log.Fatalf("Failed to open output: %v", err)
	}

	out, runErr := svc.Run(ctx, &extraction.RunInput{
		Input:  input,
		Output: output,
		Mode:   cfg.Mode,
		Policy: cfg.Policy,
	})
	if err := closeOutput(); err != nil && runErr == nil {
		runErr = err
	}

	// The output has no framing, so the true bit count goes to stderr
	if out != nil {
		summary := out.Summary
		log.Printf("Run %s: %d bits written (%d bytes), %d bits dropped", summary.ID, summary.BitsFlushed, summary.BytesWritten, summary.BitsDropped)
		log.Printf("Rolls: %d read, %d accepted, %d rejected, %d malformed", summary.RollsRead, summary.RollsAccepted, summary.RollsRejected, summary.RollsMalformed)
	}

	if runErr != nil {
		log.Printf("Error: %v", runErr)
		// os.Exit skips deferred calls
		stop()
		closeRedis()
		os.Exit(1)
	}
}

// openOutput opens the output file, or stdout for "-"
func openOutput(path string) (bitbuf.Sink, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func listRuns(ctx context.Context, svc extraction.Service, limit int) error {
	out, err := svc.ListRuns(ctx, &extraction.ListRunsInput{Limit: limit})
	if err != nil {
		return err
	}

	for _, run := range out.Runs {
		log.Printf("%s %s %s/%s: %d bits from %d rolls", run.FinishedAt.Format("2006-01-02 15:04:05"), run.ID, run.Mode, run.Policy, run.BitsFlushed, run.RollsRead)
	}
	return nil
}
