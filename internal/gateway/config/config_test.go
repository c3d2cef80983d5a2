package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.True(t, cfg.Local())
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.GitHub.Token)
	assert.Equal(t, 8, cfg.Graph.Concurrency)
	assert.Nil(t, cfg.Graph.Exclude)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.LLM.Retries)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":               "8080",
		"APP_ENV":            "production",
		"GITHUB_TOKEN":       " ghp_x ",
		"GITHUB_API_URL":     "http://ghe.local/api/v3",
		"GITHUB_TIMEOUT":     "5s",
		"SHUTDOWN_TIMEOUT":   "20s",
		"FETCH_CONCURRENCY":  "2",
		"REPOGRAPH_EXCLUDE":  "dist/, *.min.js ,,",
		"GEMINI_API_KEY":     "k",
		"GEMINI_MODEL":       "gemini-2.5-pro",
		"LLM_RPS":            "0.5",
		"LLM_BURST":          "2",
		"LLM_RETRIES":        "1",
		"GITHUB_GRAPHQL_URL": "http://ghe.local/api/graphql",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.False(t, cfg.Local())
	assert.Equal(t, "ghp_x", cfg.GitHub.Token)
	assert.Equal(t, "http://ghe.local/api/v3", cfg.GitHub.BaseURL)
	assert.Equal(t, "http://ghe.local/api/graphql", cfg.GitHub.GraphQLURL)
	assert.Equal(t, 5*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2, cfg.Graph.Concurrency)
	assert.Equal(t, []string{"dist/", "*.min.js"}, cfg.Graph.Exclude)
	assert.Equal(t, "k", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 0.5, cfg.LLM.RPS)
	assert.Equal(t, 2, cfg.LLM.Burst)
	assert.Equal(t, 1, cfg.LLM.Retries)
}

func TestFromEnvKeepsHostPort(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"PORT": "127.0.0.1:9000"}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Port)
}

func TestFromEnvRejectsMalformed(t *testing.T) {
	for _, key := range []string{"SHUTDOWN_TIMEOUT", "GITHUB_TIMEOUT", "FETCH_CONCURRENCY", "LLM_RPS", "LLM_BURST", "LLM_RETRIES"} {
		_, err := FromEnv(envOf(map[string]string{key: "lots"}))
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), key)
	}
}
