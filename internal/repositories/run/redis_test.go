package run

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/dicebits/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newRun(id string, finishedAt time.Time) *models.RunSummary {
	return &models.RunSummary{
		ID:            id,
		Mode:          models.ModeOrientation,
		Policy:        models.PolicyDiscard,
		WordWidth:     32,
		RollsRead:     10,
		RollsAccepted: 8,
		RollsRejected: 2,
		BitsAppended:  32,
		BitsFlushed:   32,
		BytesWritten:  4,
		StartedAt:     finishedAt.Add(-time.Minute),
		FinishedAt:    finishedAt,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRun() {
	run := s.newRun("run-1", s.testNow)

	err := s.repo.SaveRun(context.Background(), &SaveRunInput{Run: run})
	s.Require().NoError(err)

	got, err := s.repo.GetRun(context.Background(), &GetRunInput{RunID: "run-1"})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal("run-1", got.ID)
	s.Equal(models.ModeOrientation, got.Mode)
	s.Equal(models.PolicyDiscard, got.Policy)
	s.Equal(uint(32), got.WordWidth)
	s.Equal(8, got.RollsAccepted)
	s.Equal(4, got.BytesWritten)
	s.True(s.testNow.Equal(got.FinishedAt))
}

func (s *RedisRepositoryTestSuite) TestGetRunNotFound() {
	_, err := s.repo.GetRun(context.Background(), &GetRunInput{RunID: "missing"})
	s.ErrorIs(err, ErrRunNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveRunValidatesInput() {
	s.Error(s.repo.SaveRun(context.Background(), nil))
	s.Error(s.repo.SaveRun(context.Background(), &SaveRunInput{Run: &models.RunSummary{}}))

	_, err := s.repo.GetRun(context.Background(), &GetRunInput{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestListRunsNewestFirst() {
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := s.newRun(id, s.testNow.Add(time.Duration(i)*time.Hour))
		s.Require().NoError(s.repo.SaveRun(context.Background(), &SaveRunInput{Run: run}))
	}

	out, err := s.repo.ListRuns(context.Background(), &ListRunsInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Runs, 2)
	s.Equal("run-c", out.Runs[0].ID)
	s.Equal("run-b", out.Runs[1].ID)

	out, err = s.repo.ListRuns(context.Background(), nil)
	s.Require().NoError(err)
	s.Len(out.Runs, 3)
}

func (s *RedisRepositoryTestSuite) TestListRunsSkipsMissingKeys() {
	s.Require().NoError(s.repo.SaveRun(context.Background(), &SaveRunInput{Run: s.newRun("run-a", s.testNow)}))
	s.Require().NoError(s.repo.SaveRun(context.Background(), &SaveRunInput{Run: s.newRun("run-b", s.testNow.Add(time.Hour))}))

	s.mr.Del(runKeyPrefix + "run-b")

	out, err := s.repo.ListRuns(context.Background(), &ListRunsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Runs, 1)
	s.Equal("run-a", out.Runs[0].ID)
}

func (s *RedisRepositoryTestSuite) TestListRunsEmpty() {
	out, err := s.repo.ListRuns(context.Background(), &ListRunsInput{})
	s.Require().NoError(err)
	s.Empty(out.Runs)
}
