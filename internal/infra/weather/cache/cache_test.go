package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
)

func TestProvider_CachesByRoundedCoordinates(t *testing.T) {
	upstream := &countingProvider{obs: outfit.Observation{TempC: 12}}
	provider := NewProvider(upstream, NewMemoryStore(), time.Minute, testLogger())

	obs, err := provider.Current(context.Background(), 1.30001, 103.80002)
	require.NoError(t, err)
	require.Equal(t, 12.0, obs.TempC)

	_, err = provider.Current(context.Background(), 1.30004, 103.8)
	require.NoError(t, err)
	require.Equal(t, 1, upstream.calls)

	_, err = provider.Current(context.Background(), 1.4, 103.8)
	require.NoError(t, err)
	require.Equal(t, 2, upstream.calls)
}

func TestProvider_ExpiresEntries(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	upstream := &countingProvider{}
	provider := NewProvider(upstream, store, time.Minute, testLogger())

	_, err := provider.Current(context.Background(), 0, 0)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = provider.Current(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2, upstream.calls)
}

func TestProvider_PropagatesUpstreamErrors(t *testing.T) {
	upstream := &countingProvider{err: errors.New("down")}
	provider := NewProvider(upstream, NewMemoryStore(), time.Minute, testLogger())

	_, err := provider.Current(context.Background(), 0, 0)
	require.Error(t, err)

	upstream.err = nil
	_, err = provider.Current(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2, upstream.calls)
}

func TestProvider_IgnoresCacheFailures(t *testing.T) {
	upstream := &countingProvider{obs: outfit.Observation{TempC: 30}}
	provider := NewProvider(upstream, brokenStore{}, time.Minute, testLogger())

	obs, err := provider.Current(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 30.0, obs.TempC)
}

func TestKey(t *testing.T) {
	require.Equal(t, "1.30:103.80", Key(1.3049, 103.8))
	require.Equal(t, "0.00:0.00", Key(-0.001, 0.004))
	require.Equal(t, "-33.87:151.21", Key(-33.8688, 151.2093))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingProvider struct {
	obs   outfit.Observation
	err   error
	calls int
}

func (p *countingProvider) Current(context.Context, float64, float64) (outfit.Observation, error) {
	p.calls++
	return p.obs, p.err
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (outfit.Observation, bool, error) {
	return outfit.Observation{}, false, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, outfit.Observation, time.Duration) error {
	return errors.New("connection refused")
}
