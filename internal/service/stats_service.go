package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"parkhub/internal/entities"
	"parkhub/internal/logger"
	"parkhub/internal/repository"
)

const statsCacheKey = "parkhub:stats:overview"

// StatsService assembles the dashboard payload. When a redis client is
// configured the assembled payload is cached for a short TTL; cache failures
// fall through to the database and are never surfaced.
type StatsService struct {
	Repo  *repository.StatsRepository
	cache *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

func NewStatsService(repo *repository.StatsRepository, cache *redis.Client, ttl time.Duration, log logger.Logger) *StatsService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsService{Repo: repo, cache: cache, ttl: ttl, log: log}
}

func (s *StatsService) Overview(ctx context.Context) (*entities.StatsResponse, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	summary, err := s.Repo.Summary()
	if err != nil {
		return nil, err
	}
	peakHours, err := s.Repo.PeakHours()
	if err != nil {
		return nil, err
	}
	topZones, err := s.Repo.TopZones(5)
	if err != nil {
		return nil, err
	}
	byDay, err := s.Repo.ByDayOfWeek()
	if err != nil {
		return nil, err
	}

	resp := &entities.StatsResponse{
		Summary:     summary,
		PeakHours:   peakHours,
		TopZones:    topZones,
		ByDayOfWeek: byDay,
	}
	s.toCache(ctx, resp)
	return resp, nil
}

func (s *StatsService) fromCache(ctx context.Context) *entities.StatsResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var resp entities.StatsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *StatsService) toCache(ctx context.Context, resp *entities.StatsResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
		s.log.Warn("stats cache write failed", logger.Error(err))
	}
}
