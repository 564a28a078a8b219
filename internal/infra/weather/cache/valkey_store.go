package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
)

// ValkeyStore persists observations in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get loads an observation.
func (s *ValkeyStore) Get(ctx context.Context, key string) (outfit.Observation, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return outfit.Observation{}, false, nil
		}
		return outfit.Observation{}, false, err
	}
	var obs outfit.Observation
	if err := json.Unmarshal([]byte(payload), &obs); err != nil {
		return outfit.Observation{}, false, err
	}
	return obs, true, nil
}

// Set stores an observation with expiry.
func (s *ValkeyStore) Set(ctx context.Context, key string, obs outfit.Observation, ttl time.Duration) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return err
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	cmd := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload)).Ex(ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":" + key
}

var _ Store = (*ValkeyStore)(nil)
