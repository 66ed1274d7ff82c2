//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clubswim/internal/meet/cache"
	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
	"clubswim/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.Redis
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.cache = cache.NewRedis(s.redis.Client, cache.WithTTL(time.Minute))
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTripWithinGeneration() {
	ctx := context.Background()
	board := models.CompetitionScoreboard{
		Competition: models.Competition{ID: id.NewCompetitionID(), Gender: models.GenderFemale, Stroke: models.StrokeBack, Distance: 50},
		Scores:      []models.CompetitionScore{},
	}

	gen, err := s.cache.Generation(ctx)
	s.Require().NoError(err)
	s.Zero(gen)

	var miss models.CompetitionScoreboard
	hit, err := s.cache.Get(ctx, gen, "competition:x", &miss)
	s.Require().NoError(err)
	s.False(hit)

	s.Require().NoError(s.cache.Set(ctx, gen, "competition:x", board))

	var got models.CompetitionScoreboard
	hit, err = s.cache.Get(ctx, gen, "competition:x", &got)
	s.Require().NoError(err)
	s.True(hit)
	s.Equal(board.Competition, got.Competition)
}

func (s *RedisCacheSuite) TestInvalidateOrphansEntries() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, 0, "group:g", models.GroupScoreboard{}))

	s.Require().NoError(s.cache.Invalidate(ctx))
	gen, err := s.cache.Generation(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), gen)

	var got models.GroupScoreboard
	hit, err := s.cache.Get(ctx, gen, "group:g", &got)
	s.Require().NoError(err)
	s.False(hit)
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	short := cache.NewRedis(s.redis.Client, cache.WithTTL(50*time.Millisecond), cache.WithPrefix("ttl-test"))
	s.Require().NoError(short.Set(ctx, 0, "competition:y", models.CompetitionScoreboard{}))

	s.Eventually(func() bool {
		var got models.CompetitionScoreboard
		hit, err := short.Get(ctx, 0, "competition:y", &got)
		return err == nil && !hit
	}, 2*time.Second, 25*time.Millisecond)
}
