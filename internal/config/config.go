package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is the fail-fast configuration error: without the
// service credential no AI call can be attempted, so startup stops here.
var ErrMissingAPIKey = errors.New("config: GEMINI_API_KEY is not set")

const (
	defaultModel       = "gemini-2.5-flash"
	defaultCallTimeout = 2 * time.Minute
	defaultSessionCap  = 256
)

type Config struct {
	Port        string
	Env         string
	APIKey      string
	Model       string
	CallTimeout time.Duration
	SessionCap  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = ":8080"
	} else if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Config{
		Port:        port,
		Env:         env,
		APIKey:      apiKey,
		Model:       firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), defaultModel),
		CallTimeout: resolveTimeout(),
		SessionCap:  resolveSessionCap(),
	}, nil
}

// resolveTimeout bounds each AI call. Zero disables the timeout; the
// upstream behavior of waiting forever is opt-in, not the default.
func resolveTimeout() time.Duration {
	raw := strings.TrimSpace(os.Getenv("LLM_CALL_TIMEOUT_SECONDS"))
	if raw == "" {
		return defaultCallTimeout
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return defaultCallTimeout
	}
	return time.Duration(secs) * time.Second
}

func resolveSessionCap() int {
	raw := strings.TrimSpace(os.Getenv("SESSION_CAPACITY"))
	if raw == "" {
		return defaultSessionCap
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultSessionCap
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
