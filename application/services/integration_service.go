package services

import (
	"context"
	"fmt"
	"time"

	"portfolio/application/ports"
	"portfolio/domain/entities"
	pkgerrors "portfolio/pkg/errors"

	"go.uber.org/zap"
)

// Cache tags of the external integrations
const (
	TagGitHubRepos   = "github-repos"
	TagLeetCodeStats = "leetcode-stats"
)

// IntegrationService serves cached data from third-party profiles.
// A nil source means the integration is not configured.
type IntegrationService struct {
	repos  ports.RepositorySource
	stats  ports.StatsSource
	cache  ports.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(
	repos ports.RepositorySource,
	stats ports.StatsSource,
	cache ports.Cache,
	ttl time.Duration,
	logger *zap.Logger,
) *IntegrationService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &IntegrationService{repos: repos, stats: stats, cache: cache, ttl: ttl, logger: logger}
}

// Repositories returns the public repositories, most recently updated first
func (s *IntegrationService) Repositories(ctx context.Context) ([]entities.Repository, error) {
	if s.repos == nil {
		return nil, pkgerrors.NewNotFoundError("GitHub integration")
	}

	v, err := s.cache.GetCached(ctx, TagGitHubRepos, s.ttl, func(ctx context.Context) (interface{}, error) {
		repos, err := s.repos.ListRepositories(ctx)
		if err != nil {
			return nil, externalError("github", err)
		}
		return repos, nil
	})
	if err != nil {
		s.logger.Warn("GitHub repositories unavailable", zap.Error(err))
		return nil, err
	}

	repos, ok := v.([]entities.Repository)
	if !ok {
		return nil, pkgerrors.NewInternalError(fmt.Sprintf("unexpected cache value for tag %s", TagGitHubRepos))
	}
	return repos, nil
}

// Stats returns the coding practice statistics
func (s *IntegrationService) Stats(ctx context.Context) (*entities.CodingStats, error) {
	if s.stats == nil {
		return nil, pkgerrors.NewNotFoundError("LeetCode integration")
	}

	v, err := s.cache.GetCached(ctx, TagLeetCodeStats, s.ttl, func(ctx context.Context) (interface{}, error) {
		stats, err := s.stats.FetchStats(ctx)
		if err != nil {
			return nil, externalError("leetcode", err)
		}
		return stats, nil
	})
	if err != nil {
		s.logger.Warn("LeetCode stats unavailable", zap.Error(err))
		return nil, err
	}

	stats, ok := v.(*entities.CodingStats)
	if !ok {
		return nil, pkgerrors.NewInternalError(fmt.Sprintf("unexpected cache value for tag %s", TagLeetCodeStats))
	}
	return stats, nil
}

// Refresh drops the cached integration data
func (s *IntegrationService) Refresh(ctx context.Context) {
	s.cache.Invalidate(ctx, TagGitHubRepos, TagLeetCodeStats)
}

func externalError(service string, err error) error {
	if pkgerrors.GetAppError(err) != nil {
		return err
	}
	return pkgerrors.NewExternalError(service, err)
}
