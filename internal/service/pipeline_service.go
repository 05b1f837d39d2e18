package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

const pipelineStatsCacheKey = "sams:pipeline:stats"

// PipelineService summarizes the admissions pipeline for the dashboard board.
type PipelineService interface {
	Stats(ctx context.Context) (dto.PipelineStatsResponse, bool, error)
}

type pipelineService struct {
	applications repository.ApplicationRepository
	redis        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewPipelineService constructs a PipelineService. A nil redis client
// disables caching.
func NewPipelineService(appRepo repository.ApplicationRepository, redisClient *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) PipelineService {
	return &pipelineService{
		applications: appRepo,
		redis:        redisClient,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "pipeline_service").Logger(),
		now:          time.Now,
	}
}

// Stats returns stage counts, reporting whether the response was cached.
func (s *pipelineService) Stats(ctx context.Context) (dto.PipelineStatsResponse, bool, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, true, nil
	}

	counts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return dto.PipelineStatsResponse{}, false, err
	}

	stages := make([]dto.StageCount, admission.StageCount)
	for i, stage := range admission.Stages {
		stages[i] = dto.StageCount{Stage: stage.Index, StageName: stage.Name}
	}

	var total int64
	for status, count := range counts {
		total += count
		stage := admission.StageFor(admission.Status(status))
		stages[stage].Count += count
	}

	stats := dto.PipelineStatsResponse{
		Total:       total,
		Stages:      stages,
		ByStatus:    counts,
		GeneratedAt: s.now(),
	}

	s.toCache(ctx, stats)
	return stats, false, nil
}

func (s *pipelineService) fromCache(ctx context.Context) (dto.PipelineStatsResponse, bool) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return dto.PipelineStatsResponse{}, false
	}

	raw, err := s.redis.Get(ctx, pipelineStatsCacheKey).Bytes()
	if err != nil {
		return dto.PipelineStatsResponse{}, false
	}

	var stats dto.PipelineStatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed cached pipeline stats")
		return dto.PipelineStatsResponse{}, false
	}
	return stats, true
}

func (s *pipelineService) toCache(ctx context.Context, stats dto.PipelineStatsResponse) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, pipelineStatsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache pipeline stats")
	}
}
