package stylist

import (
	"context"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
)

// Oracle proposes a candidate outfit. Its output is untrusted and always
// passes through the enforcement engine.
type Oracle interface {
	Propose(ctx context.Context, req OracleRequest) (outfit.Outfit, error)
}

// WeatherProvider returns current conditions for a coordinate.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (outfit.Observation, error)
}
