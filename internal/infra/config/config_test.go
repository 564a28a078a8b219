package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "gpt-5-mini", cfg.LLM.RecommendModel)
	require.Equal(t, 10.0, cfg.Rules.Outfit().ColdBelowC)
	require.Equal(t, 28.0, cfg.Rules.Outfit().HotAboveC)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
weather:
  cacheTtl: 2m
rules:
  hotAboveC: 30
  lightCategories: ["tube top"]
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("OPENWEATHER_API_KEY", "weather-key")
	t.Setenv("LLM_API_KEY", "llm-key")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 2*time.Minute, cfg.Weather.CacheTTL)
	require.Equal(t, "weather-key", cfg.Weather.APIKey)
	require.Equal(t, "llm-key", cfg.LLM.APIKey)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)

	rules := cfg.Rules.Outfit()
	require.Equal(t, 30.0, rules.HotAboveC)
	require.Equal(t, []string{"tube top"}, rules.LightCategories)
	require.Contains(t, rules.HeavyCategories, "coat")
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "placeholder")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-dotenv\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Auth.Secret)
}

func TestValidateRejectsInvertedThresholds(t *testing.T) {
	cfg := defaultConfig()
	cold := 30.0
	cfg.Rules.ColdBelowC = &cold
	require.ErrorContains(t, cfg.Validate(), "rules")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
