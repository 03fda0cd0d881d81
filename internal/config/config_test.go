// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsCoverPoolTuning(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))

	var c Config
	require.NoError(t, k.Unmarshal("", &c))

	assert.Equal(t, 10, c.Redis.PoolSize)
	assert.Equal(t, 5, c.Redis.MinIdleConns)
	assert.Equal(t, 30*time.Second, c.Redis.PoolTimeout)
	assert.Equal(t, 5*time.Minute, c.Redis.ConnMaxIdleTime)

	assert.Equal(t, 25, c.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, c.Database.ConnMaxLifetime)
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "redis.url", envKeyReplacer("REDIS_URL"))
	assert.Equal(t, "identity.jwks_url", envKeyReplacer("IDENTITY_JWKS_URL"))
	assert.Equal(t, "", envKeyReplacer("UNRELATED_VAR"))
}
