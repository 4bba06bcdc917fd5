package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Pipeline data
	DataDir        string
	AliasesPath    string
	AuditStorePath string

	// API-Football via RapidAPI
	RapidAPIKey     string
	RapidAPIHost    string
	RapidAPIBaseURL string
	ProviderTimeout time.Duration
	ProviderRPS     int

	// Team resolver service
	ResolverHost string
	ResolverPort int

	// Telemetry
	LogLevel string
	LogFile  string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataDir:        envStr("DATA_DIR", "data/out"),
		AliasesPath:    envStr("ALIASES_PATH", ""),
		AuditStorePath: envStr("AUDIT_STORE_PATH", "data/audit/names.db"),

		// The original workflow exported the key as X_RAPIDAPI_KEY in some jobs.
		RapidAPIKey:     cleanSecret(envStr("RAPIDAPI_KEY", envStr("X_RAPIDAPI_KEY", ""))),
		RapidAPIHost:    envStr("RAPIDAPI_HOST", "api-football-v1.p.rapidapi.com"),
		RapidAPIBaseURL: envStr("RAPIDAPI_BASE_URL", "https://api-football-v1.p.rapidapi.com/v3"),
		ProviderTimeout: envDuration("PROVIDER_TIMEOUT_SEC", 20*time.Second),
		ProviderRPS:     envInt("PROVIDER_RPS", 5),

		ResolverHost: envStr("RESOLVER_HOST", "0.0.0.0"),
		ResolverPort: envInt("RESOLVER_PORT", 8088),

		LogLevel: envStr("LOG_LEVEL", "info"),
		LogFile:  envStr("LOG_FILE", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if n := envInt(key, -1); n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

// cleanSecret drops stray CR/LF/tab characters pasted into CI secrets.
func cleanSecret(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r', '\n', '\t', ' ':
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
