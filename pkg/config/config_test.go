package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "8080")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Source.RetryCount)
	assert.Equal(t, 60*time.Second, cfg.Source.RequestTimeout)
	assert.True(t, cfg.Source.Cacheable)
	assert.False(t, cfg.Source.Hidden)
	assert.Equal(t, []string{"https://tile.openstreetmap.org"}, cfg.Source.LayerURLs)
	assert.Equal(t, "map", cfg.Cache.Backend)
	assert.Equal(t, "bus", cfg.Notify.Backend)
}

func TestLayerURLsSplitOnComma(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "8080")
	t.Setenv("SOURCE_LAYER_URLS", "https://a.example.com,https://b.example.com")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Source.LayerURLs)
}

func TestRetryCountMustBePositive(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "8080")
	t.Setenv("SOURCE_RETRY_COUNT", "0")

	_, err := New()
	require.Error(t, err)
}

func TestRedisPasswordStaysOutOfMarshaledConfig(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "8080")
	t.Setenv("REDIS_PASSWORD", "s3cret")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg.Redis.Password)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "s3cret")
}

func TestUnknownCacheBackendRejected(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "8080")
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := New()
	require.Error(t, err)
}
