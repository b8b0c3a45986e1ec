package services

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"hfp-go-api/internal/config"
	"hfp-go-api/internal/engine"
	"hfp-go-api/internal/models"
)

// ProjectionOrchestrator runs the projection engine behind a config-hash
// cache. The engine itself is pure; identical configs always resolve to the
// same series, so a hash of the config is a complete cache key.
type ProjectionOrchestrator struct {
	config *config.Config
	cache  *CacheService
}

func NewProjectionOrchestrator(cfg *config.Config, cache *CacheService) *ProjectionOrchestrator {
	return &ProjectionOrchestrator{
		config: cfg,
		cache:  cache,
	}
}

// GenerateProjection returns the full snapshot series for a config, served
// from cache when the same config was projected before.
func (o *ProjectionOrchestrator) GenerateProjection(ctx context.Context, pc models.ProjectionConfig) (*models.ProjectionResponse, error) {
	key, err := CacheKey(pc)
	if err != nil {
		return nil, err
	}

	if cached, found := o.cache.GetProjection(ctx, key); found {
		return cached, nil
	}

	snapshots, err := engine.Simulate(pc)
	if err != nil {
		return nil, err
	}

	response := &models.ProjectionResponse{
		Snapshots:   snapshots,
		GeneratedAt: time.Now(),
		CacheHit:    false,
	}

	if err := o.cache.SetProjection(ctx, key, response); err != nil {
		// Caching is best effort; the projection itself succeeded.
		return response, nil
	}

	return response, nil
}

// CacheKey hashes the canonical JSON form of a config. Field order is fixed
// by the struct definition, so equal configs always produce equal keys.
func CacheKey(pc models.ProjectionConfig) (string, error) {
	data, err := json.Marshal(pc)
	if err != nil {
		return "", fmt.Errorf("hashing projection config: %w", err)
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}
