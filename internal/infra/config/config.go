package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Auth     AuthConfig     `yaml:"auth"`
	Weather  WeatherConfig  `yaml:"weather"`
	Postgres PostgresConfig `yaml:"postgres"`
	Storage  StorageConfig  `yaml:"storage"`
	Stylist  StylistConfig  `yaml:"stylist"`
	Rules    RulesConfig    `yaml:"rules"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey              string  `yaml:"apiKey"`
	BaseURL             string  `yaml:"baseUrl"`
	AttributeModel      string  `yaml:"attributeModel"`
	RecommendModel      string  `yaml:"recommendModel"`
	FallbackModel       string  `yaml:"fallbackModel"`
	Temperature         float32 `yaml:"temperature"`
	WardrobeTokenBudget int     `yaml:"wardrobeTokenBudget"`
	TokenEncoding       string  `yaml:"tokenEncoding"`
	InlineImages        bool    `yaml:"inlineImages"`
}

// AuthConfig drives token issuance.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
}

// WeatherConfig controls the OpenWeatherMap lookup and its cache.
type WeatherConfig struct {
	APIKey   string        `yaml:"apiKey"`
	BaseURL  string        `yaml:"baseUrl"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cacheTtl"`
	Redis    RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// StorageConfig selects the image store.
type StorageConfig struct {
	Endpoint       string `yaml:"endpoint"`
	AccessKey      string `yaml:"accessKey"`
	SecretKey      string `yaml:"secretKey"`
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	PublicBaseURL  string `yaml:"publicBaseUrl"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes"`
}

// StylistConfig bounds recommendation requests.
type StylistConfig struct {
	MaxPromptChars int `yaml:"maxPromptChars"`
}

// RulesConfig overrides the enforcement vocabulary. Empty lists keep defaults.
type RulesConfig struct {
	ColdBelowC      *float64 `yaml:"coldBelowC"`
	HotAboveC       *float64 `yaml:"hotAboveC"`
	HeavyCategories []string `yaml:"heavyCategories"`
	HeavyMaterials  []string `yaml:"heavyMaterials"`
	LightCategories []string `yaml:"lightCategories"`
	LightMaterials  []string `yaml:"lightMaterials"`
	WarmKeywords    []string `yaml:"warmKeywords"`
	CoolKeywords    []string `yaml:"coolKeywords"`
}

// Outfit merges overrides onto outfit.DefaultRules.
func (r RulesConfig) Outfit() outfit.Rules {
	rules := outfit.DefaultRules()
	if r.ColdBelowC != nil {
		rules.ColdBelowC = *r.ColdBelowC
	}
	if r.HotAboveC != nil {
		rules.HotAboveC = *r.HotAboveC
	}
	override := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	override(&rules.HeavyCategories, r.HeavyCategories)
	override(&rules.HeavyMaterials, r.HeavyMaterials)
	override(&rules.LightCategories, r.LightCategories)
	override(&rules.LightMaterials, r.LightMaterials)
	override(&rules.WarmKeywords, r.WarmKeywords)
	override(&rules.CoolKeywords, r.CoolKeywords)
	return rules
}

// Load reads configuration from a YAML file, an optional .env file, and
// environment variables, in that order of precedence (last wins).
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")
	setBool(&cfg.HTTP.Retry.Enabled, "HTTP_RETRY_ENABLED")
	setInt(&cfg.HTTP.Retry.MaxAttempts, "HTTP_RETRY_MAX_ATTEMPTS")
	setDuration(&cfg.HTTP.Retry.BaseBackoff, "HTTP_RETRY_BASE_BACKOFF")

	// OPENAI_API_KEY is accepted for parity with existing deployments.
	setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.AttributeModel, "LLM_ATTRIBUTE_MODEL")
	setString(&cfg.LLM.RecommendModel, "LLM_RECOMMEND_MODEL")
	setString(&cfg.LLM.FallbackModel, "LLM_FALLBACK_MODEL")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	setInt(&cfg.LLM.WardrobeTokenBudget, "LLM_WARDROBE_TOKEN_BUDGET")
	setString(&cfg.LLM.TokenEncoding, "LLM_TOKEN_ENCODING")
	setBool(&cfg.LLM.InlineImages, "LLM_INLINE_IMAGES")

	setString(&cfg.Auth.Secret, "JWT_SECRET")
	setDuration(&cfg.Auth.TokenTTL, "AUTH_TOKEN_TTL")
	setDuration(&cfg.Auth.RefreshTokenTTL, "AUTH_REFRESH_TOKEN_TTL")

	setString(&cfg.Weather.APIKey, "OPENWEATHER_API_KEY")
	setString(&cfg.Weather.BaseURL, "OPENWEATHER_BASE_URL")
	setDuration(&cfg.Weather.Timeout, "WEATHER_TIMEOUT")
	setDuration(&cfg.Weather.CacheTTL, "WEATHER_CACHE_TTL")
	setBool(&cfg.Weather.Redis.Enabled, "WEATHER_REDIS_ENABLED")
	setString(&cfg.Weather.Redis.Addr, "WEATHER_REDIS_ADDR")

	setString(&cfg.Postgres.DSN, "POSTGRES_DSN")
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}

	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Region, "STORAGE_REGION")
	setString(&cfg.Storage.PublicBaseURL, "STORAGE_PUBLIC_BASE_URL")
	if v := os.Getenv("STORAGE_MAX_UPLOAD_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Storage.MaxUploadBytes = parsed
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if clean := strings.TrimSpace(p); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 250 * time.Millisecond,
				Exclude: []string{
					"/api/v1/items",
					"/api/v1/outfits/from-image",
					"/api/v1/auth/signup",
				},
			},
		},
		LLM: LLMConfig{
			AttributeModel:      "gpt-5-mini",
			RecommendModel:      "gpt-5-mini",
			FallbackModel:       "gpt-4o-mini",
			Temperature:         0.2,
			WardrobeTokenBudget: 12000,
			TokenEncoding:       "cl100k_base",
			InlineImages:        true,
		},
		Auth: AuthConfig{
			Secret:          "supersecret",
			TokenTTL:        7 * 24 * time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
		},
		Weather: WeatherConfig{
			BaseURL:  "https://api.openweathermap.org/data/2.5/weather",
			Timeout:  5 * time.Second,
			CacheTTL: 10 * time.Minute,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Storage: StorageConfig{
			Bucket:         "fitcheck",
			Region:         "auto",
			PublicBaseURL:  "http://localhost:8080/api/v1/images",
			MaxUploadBytes: 10 << 20,
		},
		Stylist: StylistConfig{
			MaxPromptChars: 1000,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.LLM.AttributeModel) == "" || strings.TrimSpace(c.LLM.RecommendModel) == "" {
		return errors.New("llm models cannot be empty")
	}
	if c.LLM.WardrobeTokenBudget < 0 {
		return errors.New("llm.wardrobeTokenBudget cannot be negative")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth token ttls must be positive")
	}
	if c.Weather.CacheTTL < 0 {
		return errors.New("weather.cacheTtl cannot be negative")
	}
	if c.Weather.Redis.Enabled && strings.TrimSpace(c.Weather.Redis.Addr) == "" {
		return errors.New("weather.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return errors.New("storage.maxUploadBytes must be positive")
	}
	if strings.TrimSpace(c.Storage.PublicBaseURL) == "" {
		return errors.New("storage.publicBaseUrl cannot be empty")
	}
	if c.Stylist.MaxPromptChars <= 0 {
		return errors.New("stylist.maxPromptChars must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if err := c.Rules.Outfit().Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}
