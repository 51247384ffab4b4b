package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigDefaults(t *testing.T) {
	t.Setenv("GROQ_MODEL", "")
	t.Setenv("MAX_HISTORY", "")
	t.Setenv("CACHE_TTL", "")

	cfg := GetConfig()

	assert.Equal(t, "llama3-8b-8192", cfg.ModelName)
	assert.Equal(t, 5, cfg.MaxHistory)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestCacheTTLFromEnvironment(t *testing.T) {
	t.Setenv("CACHE_TTL", "90s")

	cfg := GetConfig()
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
}

func TestCacheTTLIgnoresInvalidValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	cfg := GetConfig()
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestMaxHistoryIgnoresNonPositiveValues(t *testing.T) {
	t.Setenv("MAX_HISTORY", "-2")

	cfg := GetConfig()
	assert.Equal(t, 5, cfg.MaxHistory)
}
