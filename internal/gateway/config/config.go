package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string
	// ShutdownTimeout bounds how long in-flight requests get to finish.
	ShutdownTimeout time.Duration
	GitHub GitHubConfig
	Graph  GraphConfig
	LLM    LLMConfig
}

type GitHubConfig struct {
	Token      string
	BaseURL    string
	GraphQLURL string
	Timeout    time.Duration
}

type GraphConfig struct {
	// Concurrency bounds simultaneous blob downloads per request.
	Concurrency int
	// Exclude holds gitignore-style patterns dropped from the relevant set.
	Exclude []string
}

type LLMConfig struct {
	APIKey  string
	Model   string
	RPS     float64
	Burst   int
	Retries int
}

// Local reports whether the server runs in the local development profile.
func (c *Config) Local() bool { return strings.EqualFold(c.Env, "local") }

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function. Malformed numbers
// and durations are errors; missing values take defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	port := firstNonEmpty(get("PORT"), ":3001")
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		port = ":" + port
	}

	shutdown, err := parseDuration(get("SHUTDOWN_TIMEOUT"), 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	timeout, err := parseDuration(get("GITHUB_TIMEOUT"), 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GITHUB_TIMEOUT: %w", err)
	}
	concurrency, err := parseInt(get("FETCH_CONCURRENCY"), 8)
	if err != nil {
		return nil, fmt.Errorf("FETCH_CONCURRENCY: %w", err)
	}
	rps, err := parseFloat(get("LLM_RPS"), 1)
	if err != nil {
		return nil, fmt.Errorf("LLM_RPS: %w", err)
	}
	burst, err := parseInt(get("LLM_BURST"), 1)
	if err != nil {
		return nil, fmt.Errorf("LLM_BURST: %w", err)
	}
	retries, err := parseInt(get("LLM_RETRIES"), 3)
	if err != nil {
		return nil, fmt.Errorf("LLM_RETRIES: %w", err)
	}

	return &Config{
		Port:            port,
		Env:             firstNonEmpty(get("APP_ENV"), "local"),
		ShutdownTimeout: shutdown,
		GitHub: GitHubConfig{
			Token:      get("GITHUB_TOKEN"),
			BaseURL:    get("GITHUB_API_URL"),
			GraphQLURL: get("GITHUB_GRAPHQL_URL"),
			Timeout:    timeout,
		},
		Graph: GraphConfig{
			Concurrency: concurrency,
			Exclude:     splitList(get("REPOGRAPH_EXCLUDE")),
		},
		LLM: LLMConfig{
			APIKey:  get("GEMINI_API_KEY"),
			Model:   firstNonEmpty(get("GEMINI_MODEL"), "gemini-2.5-flash"),
			RPS:     rps,
			Burst:   burst,
			Retries: retries,
		},
	}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}

func parseInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func parseFloat(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
