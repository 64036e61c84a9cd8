package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("PLAN_RATE_LIMIT", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg := Load()
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, 0, cfg.PlanRateLimit)
	assert.Equal(t, "ollama", cfg.LLMProvider)
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET_KEY is required")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("MCP_ENABLED", "true")
	t.Setenv("PLAN_RATE_LIMIT", "5")
	t.Setenv("PLAN_RATE_WINDOW_SECONDS", "30")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.True(t, cfg.MCPEnabled)
	assert.Equal(t, 30*time.Second, cfg.PlanRateWindow())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "soon")
	t.Setenv("MCP_ENABLED", "maybe")

	cfg := Load()
	assert.Equal(t, 30, cfg.AccessTokenExpireMin)
	assert.False(t, cfg.MCPEnabled)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{JWTSecret: "k", JWTAlgorithm: "HS256", AccessTokenExpireMin: 30, LLMProvider: "ollama"}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"rsa algorithm":    func(c *Config) { c.JWTAlgorithm = "RS256" },
		"none algorithm":   func(c *Config) { c.JWTAlgorithm = "none" },
		"zero ttl":         func(c *Config) { c.AccessTokenExpireMin = 0 },
		"unknown provider": func(c *Config) { c.LLMProvider = "bard" },
		"bad rate window":  func(c *Config) { c.PlanRateLimit = 3; c.PlanRateWindowSeconds = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
