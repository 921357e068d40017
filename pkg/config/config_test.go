package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.Grading.CacheEnabled)
	assert.Equal(t, 15*time.Minute, cfg.Grading.CacheTTL)
	assert.Equal(t, 500, cfg.Grading.MaxBatchSize)
	assert.Equal(t, "Grade Sheet", cfg.Export.Title)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GRADING_CACHE_TTL", "bogus")
	t.Setenv("GRADING_MAX_BATCH_SIZE", "-4")
	t.Setenv("ALLOWED_ORIGINS", "https://grades.example.edu, ,http://localhost:5173")
	t.Setenv("ENABLE_GRADING_CACHE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.Grading.CacheTTL)
	assert.Equal(t, 500, cfg.Grading.MaxBatchSize)
	assert.False(t, cfg.Grading.CacheEnabled)
	assert.Equal(t, []string{"https://grades.example.edu", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}
