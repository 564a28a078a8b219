package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/fitcheck/internal/domain/auth"
	"github.com/yanqian/fitcheck/internal/domain/outfit"
	"github.com/yanqian/fitcheck/internal/domain/stylist"
	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
	"github.com/yanqian/fitcheck/internal/infra/config"
	"github.com/yanqian/fitcheck/internal/infra/imagestore"
	"github.com/yanqian/fitcheck/internal/infra/llm/chatgpt"
	llmstylist "github.com/yanqian/fitcheck/internal/infra/llm/stylist"
	"github.com/yanqian/fitcheck/internal/infra/userrepo"
	"github.com/yanqian/fitcheck/internal/infra/wardroberepo"
	"github.com/yanqian/fitcheck/internal/infra/weather/cache"
	"github.com/yanqian/fitcheck/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/fitcheck/internal/interface/http"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideWardrobeConfig(cfg *config.Config) wardrobe.Config {
	return wardrobe.Config{MaxUploadBytes: cfg.Storage.MaxUploadBytes}
}

func provideStylistConfig(cfg *config.Config) stylist.Config {
	return stylist.Config{MaxPromptChars: cfg.Stylist.MaxPromptChars}
}

func provideLLMConfig(cfg *config.Config) llmstylist.Config {
	return llmstylist.Config{
		AttributeModel:      cfg.LLM.AttributeModel,
		RecommendModel:      cfg.LLM.RecommendModel,
		FallbackModel:       cfg.LLM.FallbackModel,
		Temperature:         cfg.LLM.Temperature,
		WardrobeTokenBudget: cfg.LLM.WardrobeTokenBudget,
		InlineImages:        cfg.LLM.InlineImages,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) llmstylist.TokenCounter {
	return llmstylist.NewTokenCounter(cfg.LLM.TokenEncoding, logger)
}

func provideEngine(cfg *config.Config) *outfit.Engine {
	return outfit.NewEngine(cfg.Rules.Outfit())
}

// providePostgresPool returns nil when no DSN is configured or the database
// is unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideWardrobeRepository(pool *pgxpool.Pool) wardrobe.Repository {
	if pool == nil {
		return wardroberepo.NewMemoryRepository()
	}
	return wardroberepo.NewPostgresRepository(pool)
}

func provideImageStore(cfg *config.Config, logger *slog.Logger) (wardrobe.ImageStore, error) {
	if strings.TrimSpace(cfg.Storage.Endpoint) == "" {
		logger.Info("storage endpoint not set, using memory image store")
		return imagestore.NewMemoryStore(cfg.Storage.PublicBaseURL), nil
	}
	store, err := imagestore.NewR2Store(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.Region,
		cfg.Storage.PublicBaseURL,
		logger,
	)
	if err != nil {
		return nil, err
	}
	logger.Info("r2 image store enabled", "bucket", cfg.Storage.Bucket)
	return store, nil
}

func provideAttributeExtractor(client *chatgpt.Client, cfg llmstylist.Config, logger *slog.Logger) wardrobe.AttributeExtractor {
	return llmstylist.NewAttributeExtractor(client, cfg, logger)
}

func provideOracle(client *chatgpt.Client, cfg llmstylist.Config, counter llmstylist.TokenCounter, logger *slog.Logger) stylist.Oracle {
	return llmstylist.NewOracle(client, cfg, counter, logger)
}

// provideWeatherProvider returns nil without an API key so recommendations
// skip thermal enforcement instead of failing.
func provideWeatherProvider(cfg *config.Config, logger *slog.Logger) stylist.WeatherProvider {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("weather api key not set, recommendations will ignore weather")
		return nil
	}
	upstream := openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
	if cfg.Weather.CacheTTL <= 0 {
		return upstream
	}
	return cache.NewProvider(upstream, provideWeatherStore(cfg, logger), cfg.Weather.CacheTTL, logger)
}

func provideWeatherStore(cfg *config.Config, logger *slog.Logger) cache.Store {
	if cfg.Weather.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return cache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return cache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("weather valkey cache enabled", "addr", cfg.Weather.Redis.Addr)
			return cache.NewValkeyStore(client, "weather")
		}
	}
	return cache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Weather.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Weather.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Weather.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideHandler(
	cfg *config.Config,
	authSvc auth.Service,
	wardrobeSvc wardrobe.Service,
	stylistSvc stylist.Service,
	images wardrobe.ImageStore,
	logger *slog.Logger,
) *httpiface.Handler {
	return httpiface.NewHandler(authSvc, wardrobeSvc, stylistSvc, images, cfg.Storage.MaxUploadBytes, logger)
}
