// Package roster implements the Roster provider: it returns the active
// employees for a date range, fully populated in one batch, with an optional
// redis read-through cache in front of the database.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// Source is the backing store the provider reads through to
type Source interface {
	GetEmployees(ctx context.Context, department string) ([]model.Employee, error)
}

// Provider serves roster snapshots. With a nil cache client it reads straight
// from the source; cache failures always fall back to the source, never fail
// the read.
type Provider struct {
	source Source
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a roster provider. cache may be nil to disable caching.
func New(source Source, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *Provider {
	return &Provider{source: source, cache: cache, ttl: ttl, logger: logger}
}

// ActiveEmployees returns the active roster for the given range and optional
// department filter
func (p *Provider) ActiveEmployees(ctx context.Context, from, to time.Time, department string) ([]model.Employee, error) {
	key := cacheKey(from, to, department)

	if p.cache != nil {
		payload, err := p.cache.Get(ctx, key).Bytes()
		if err == nil {
			var employees []model.Employee
			if err := json.Unmarshal(payload, &employees); err == nil {
				p.logger.Debug("Roster cache hit", zap.String("key", key), zap.Int("count", len(employees)))
				return employees, nil
			}
			p.logger.Warn("Discarding undecodable roster cache entry", zap.String("key", key), zap.Error(err))
		} else if err != redis.Nil {
			p.logger.Warn("Roster cache read failed, falling back to source", zap.Error(err))
		}
	}

	employees, err := p.source.GetEmployees(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	if p.cache != nil {
		if payload, err := json.Marshal(employees); err == nil {
			if err := p.cache.Set(ctx, key, payload, p.ttl).Err(); err != nil {
				p.logger.Warn("Roster cache write failed", zap.Error(err))
			}
		}
	}

	return employees, nil
}

// Invalidate drops the cached roster for a range, e.g. after employee edits
func (p *Provider) Invalidate(ctx context.Context, from, to time.Time, department string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Del(ctx, cacheKey(from, to, department)).Err(); err != nil {
		p.logger.Warn("Roster cache invalidation failed", zap.Error(err))
	}
}

func cacheKey(from, to time.Time, department string) string {
	return fmt.Sprintf("shiftwise:roster:%s:%s:%s",
		department, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
