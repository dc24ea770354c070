package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"hockeycap/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	SourceFixture = "fixture"
	SourceLive    = "live"
)

type Config struct {
	ServerPort      string
	LogLevel        string
	DBPath          string
	RosterSource    string
	NHLBaseURL      string
	CapWagesBaseURL string
	GeminiAPIKey    string
	GeminiModel     string
	LeagueFile      string
	Season          string
	SnapshotTTL     time.Duration
	FetchLimit      int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBPath:          getEnv("DB_PATH", "hockeycap.db"),
		RosterSource:    getEnv("ROSTER_SOURCE", SourceFixture),
		NHLBaseURL:      getEnv("NHL_API_BASE_URL", "https://api-web.nhle.com/v1"),
		CapWagesBaseURL: getEnv("CAPWAGES_BASE_URL", "https://capwages.com"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LeagueFile:      getEnv("LEAGUE_FILE", ""),
		Season:          getEnv("SEASON", ""),
		SnapshotTTL:     constants.DefaultSnapshotTTL,
		FetchLimit:      constants.DefaultFetchLimit,
	}

	if v := os.Getenv("SNAPSHOT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SNAPSHOT_TTL %q: %w", v, err)
		}
		cfg.SnapshotTTL = ttl
	}
	if v := os.Getenv("FETCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid FETCH_CONCURRENCY %q", v)
		}
		cfg.FetchLimit = n
	}

	switch cfg.RosterSource {
	case SourceFixture, SourceLive:
	default:
		return nil, fmt.Errorf("ROSTER_SOURCE must be %q or %q, got %q", SourceFixture, SourceLive, cfg.RosterSource)
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, cap expert assistant disabled")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("roster_source", cfg.RosterSource).
		Dur("snapshot_ttl", cfg.SnapshotTTL).
		Int("fetch_limit", cfg.FetchLimit).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load, LoadLeague)
