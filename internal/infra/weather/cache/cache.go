package cache

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
	"github.com/yanqian/fitcheck/internal/domain/stylist"
)

// coordPrecision buckets coordinates to roughly 1 km.
const coordPrecision = 100

// Store persists observations by key.
type Store interface {
	Get(ctx context.Context, key string) (outfit.Observation, bool, error)
	Set(ctx context.Context, key string, obs outfit.Observation, ttl time.Duration) error
}

// Provider caches an upstream weather provider by rounded coordinates.
type Provider struct {
	upstream stylist.WeatherProvider
	store    Store
	ttl      time.Duration
	logger   *slog.Logger
}

// NewProvider wraps upstream with a TTL cache.
func NewProvider(upstream stylist.WeatherProvider, store Store, ttl time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		upstream: upstream,
		store:    store,
		ttl:      ttl,
		logger:   logger.With("component", "weather.cache"),
	}
}

// Current serves cached observations, falling through to upstream on a miss.
// Cache failures are logged and never fail the lookup.
func (p *Provider) Current(ctx context.Context, lat, lon float64) (outfit.Observation, error) {
	key := Key(lat, lon)
	if p.ttl > 0 {
		obs, ok, err := p.store.Get(ctx, key)
		if err != nil {
			p.logger.Warn("weather cache read failed", "key", key, "error", err)
		} else if ok {
			return obs, nil
		}
	}
	obs, err := p.upstream.Current(ctx, lat, lon)
	if err != nil {
		return outfit.Observation{}, err
	}
	if p.ttl > 0 {
		if err := p.store.Set(ctx, key, obs, p.ttl); err != nil {
			p.logger.Warn("weather cache write failed", "key", key, "error", err)
		}
	}
	return obs, nil
}

// Key buckets a coordinate pair.
func Key(lat, lon float64) string {
	return fmt.Sprintf("%.2f:%.2f", round(lat), round(lon))
}

func round(v float64) float64 {
	r := math.Round(v*coordPrecision) / coordPrecision
	if r == 0 {
		return 0
	}
	return r
}

var _ stylist.WeatherProvider = (*Provider)(nil)
