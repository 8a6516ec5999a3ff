package extraction

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/dicebits/internal/bitbuf"
	"github.com/KirkDiggler/dicebits/internal/common/clock"
	"github.com/KirkDiggler/dicebits/internal/common/uuid"
	"github.com/KirkDiggler/dicebits/internal/dice"
	"github.com/KirkDiggler/dicebits/internal/models"
	runRepo "github.com/KirkDiggler/dicebits/internal/repositories/run"
)

// service implements the Service interface
type service struct {
	capacityWords int
	wordWidth     uint
	runRepo       runRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new extraction service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	capacityWords := cfg.CapacityWords
	if capacityWords == 0 {
		capacityWords = bitbuf.DefaultCapacityWords
	}

	wordWidth := cfg.WordWidth
	if wordWidth == 0 {
		wordWidth = bitbuf.DefaultWordWidth
	}

	// Fail fast on a geometry the accumulator would refuse
	if _, err := bitbuf.New(&bitbuf.Config{CapacityWords: capacityWords, WordWidth: wordWidth}); err != nil {
		return nil, err
	}

	return &service{
		capacityWords: capacityWords,
		wordWidth:     wordWidth,
		runRepo:       cfg.RunRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// Run reads rolls until end of input, appending every accepted outcome to a
// fresh accumulator, then flushes it. The summary is returned even when the
// run fails so the caller can report how many bits were delivered.
func (s *service) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.Input == nil {
		return nil, ErrNilReader
	}

	if input.Output == nil {
		return nil, ErrNilOutput
	}

	extractor, err := dice.NewExtractor(input.Mode, input.Policy)
	if err != nil {
		return nil, err
	}

	acc, err := bitbuf.New(&bitbuf.Config{
		CapacityWords: s.capacityWords,
		WordWidth:     s.wordWidth,
	})
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{
		ID:        s.uuidGenerator.NewUUID(),
		Mode:      input.Mode,
		Policy:    input.Policy,
		WordWidth: s.wordWidth,
		StartedAt: s.clock.Now(),
	}

	out := &countingSink{sink: input.Output}
	r := &rollScanner{
		reader:    bufio.NewReader(newContextReader(ctx, input.Input)),
		mode:      input.Mode,
		extractor: extractor,
		acc:       acc,
		out:       out,
		summary:   summary,
	}

	runErr := r.consume(ctx)

	// Best effort: after a failed write the accumulator is already empty
	if _, err := acc.Flush(out); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to flush output: %w", err)
	}

	summary.BytesWritten = out.written
	summary.BitsFlushed = out.written * 8
	summary.BitsDropped = summary.BitsAppended - summary.BitsFlushed
	summary.FinishedAt = s.clock.Now()
	if runErr != nil {
		summary.Error = runErr.Error()
	}

	if s.runRepo != nil {
		// A canceled run is still recorded
		saveCtx := context.WithoutCancel(ctx)
		if err := s.runRepo.SaveRun(saveCtx, &runRepo.SaveRunInput{Run: summary}); err != nil && runErr == nil {
			runErr = fmt.Errorf("failed to save run: %w", err)
		}
	}

	return &RunOutput{Summary: summary}, runErr
}

// Convert runs an in-memory transcript through Run
func (s *service) Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var buf bytes.Buffer
	output, err := s.Run(ctx, &RunInput{
		Input:  strings.NewReader(input.Rolls),
		Output: &buf,
		Mode:   input.Mode,
		Policy: input.Policy,
	})
	if output == nil {
		return nil, err
	}

	return &ConvertOutput{
		Bits:    buf.Bytes(),
		Summary: output.Summary,
	}, err
}

// ListRuns returns recent run summaries from the ledger
func (s *service) ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error) {
	if s.runRepo == nil {
		return nil, ErrNoRunRepo
	}

	limit := 0
	if input != nil {
		limit = input.Limit
	}

	out, err := s.runRepo.ListRuns(ctx, &runRepo.ListRunsInput{Limit: limit})
	if err != nil {
		return nil, err
	}

	return &ListRunsOutput{Runs: out.Runs}, nil
}

// rollScanner holds the state of one pass over the input
type rollScanner struct {
	reader    *bufio.Reader
	mode      models.Mode
	extractor dice.Extractor
	acc       *bitbuf.Accumulator
	out       bitbuf.Sink
	summary   *models.RunSummary
}

func (r *rollScanner) consume(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		roll, wellFormed, err := r.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return fmt.Errorf("failed to read rolls: %w", err)
		}

		r.summary.RollsRead++
		if !wellFormed {
			r.summary.RollsMalformed++
			continue
		}

		outcome, ok := r.extractor.Extract(roll)
		if !ok {
			r.summary.RollsRejected++
			continue
		}

		if err := r.acc.Append(outcome.Value, outcome.Entropy, r.out); err != nil {
			return fmt.Errorf("failed to append roll: %w", err)
		}
		r.summary.RollsAccepted++
		r.summary.BitsAppended += int(outcome.Entropy)
	}
}

// next reads the next roll. In single mode every non-space byte is a roll.
// In orientation mode a roll is a token of exactly two bytes ended by a
// delimiter or end of input; longer or shorter tokens are not well formed.
func (r *rollScanner) next() (dice.Roll, bool, error) {
	c, err := r.skip()
	if err != nil {
		return dice.Roll{}, false, err
	}

	if r.mode != models.ModeOrientation {
		return dice.Roll{Top: c}, true, nil
	}

	roll := dice.Roll{Top: c}
	n := 1
	for {
		c, err := r.reader.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dice.Roll{}, false, err
		}
		if r.isDelimiter(c) {
			break
		}
		if n == 1 {
			roll.Side = c
		}
		n++
	}

	return roll, n == 2, nil
}

// skip discards delimiters and returns the first byte of the next roll
func (r *rollScanner) skip() (byte, error) {
	for {
		c, err := r.reader.ReadByte()
		if err != nil {
			return 0, err
		}
		if !r.isDelimiter(c) {
			return c, nil
		}
	}
}

func (r *rollScanner) isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	case ',':
		return r.mode == models.ModeOrientation
	}
	return false
}

// countingSink records how many bytes the wrapped sink accepted
type countingSink struct {
	sink    bitbuf.Sink
	written int
}

func (c *countingSink) Write(p []byte) (int, error) {
	n, err := c.sink.Write(p)
	if n > 0 {
		c.written += n
	}
	return n, err
}

type readResult struct {
	data []byte
	err  error
}

// contextReader returns ctx.Err() from Read as soon as ctx is done, even
// while the underlying reader is blocked. A read left in flight on
// cancellation is abandoned with its goroutine.
type contextReader struct {
	ctx     context.Context
	src     io.Reader
	results chan readResult
	pending []byte
	err     error
}

func newContextReader(ctx context.Context, src io.Reader) *contextReader {
	return &contextReader{ctx: ctx, src: src}
}

func (r *contextReader) Read(p []byte) (int, error) {
	if len(r.pending) > 0 {
		n := copy(p, r.pending)
		r.pending = r.pending[n:]
		return n, nil
	}
	if r.err != nil {
		return 0, r.err
	}

	if r.results == nil {
		results := make(chan readResult, 1)
		r.results = results
		size := len(p)
		go func() {
			buf := make([]byte, size)
			n, err := r.src.Read(buf)
			results <- readResult{data: buf[:n], err: err}
		}()
	}

	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	case res := <-r.results:
		r.results = nil
		r.err = res.err
		n := copy(p, res.data)
		r.pending = res.data[n:]
		if n > 0 {
			return n, nil
		}
		return 0, r.err
	}
}
