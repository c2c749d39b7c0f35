package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 500, cfg.ChatHistoryLimit)
	assert.False(t, cfg.SingleSession)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.R2.Enabled())
	assert.False(t, cfg.Google.Enabled())
	assert.True(t, cfg.CorsConfig.AllowCredentials)
	require.NotNil(t, cfg.CorsConfig.AllowOriginFunc)
	assert.True(t, cfg.CorsConfig.AllowOriginFunc("http://anything"))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SINGLE_SESSION", "true")
	t.Setenv("CHAT_HISTORY_LIMIT", "0")
	t.Setenv("LLM_TIMEOUT", "bogus")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_BUCKET_NAME", "bucket")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SingleSession)
	assert.Equal(t, 0, cfg.ChatHistoryLimit)
	assert.Equal(t, 30*time.Second, cfg.OpenAI.Timeout, "invalid durations fall back")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsConfig.AllowedOrigins)
	assert.Nil(t, cfg.CorsConfig.AllowOriginFunc)
	assert.True(t, cfg.R2.Enabled())
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_MODEL=gpt-4o-mini\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("OPENAI_MODEL") })

	cfg := Load(path)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}
