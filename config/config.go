package config

import (
	"log/slog"
	"os"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

type AppConfig struct {
	YouTubeAPIKey     string
	PostgresURL       string
	DiscordWebhookURL string
	SnapshotDir       string
	ProxyURL          string
	AppEnv            string // EnvDevelopment or EnvProduction
	LogLevel          slog.Level
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.YouTubeAPIKey = loadRequired("YOUTUBE_DATA_API_KEY")
	cfg.PostgresURL = loadRequired("POSTGRES_URL")
	cfg.DiscordWebhookURL = loadOptional("DISCORD_WEBHOOK_URL", "")
	cfg.SnapshotDir = loadOptional("SNAPSHOT_DIR", "./data/json")
	cfg.ProxyURL = loadOptional("PROXY_URL", "")

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	var err error
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	Config = cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Required env var not set", "key", key)
		os.Exit(1)
	}
	return value
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c AppConfig) IsProduction() bool {
	return Config.AppEnv == EnvProduction
}
