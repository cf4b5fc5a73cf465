package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DataDir     string
	DBPath      string
	ServerPort  string
	RankAPIBase string
	LogLevel    string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	cfg := &Config{
		DataDir:     getEnv("DATA_DIR", home),
		DBPath:      getEnv("DB_PATH", "rankhistory.db"),
		ServerPort:  getEnv("SERVER_PORT", "8087"),
		RankAPIBase: getEnv("RANK_API_BASE", "https://vaccie.pythonanywhere.com/mmr"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.RankAPIBase == "" {
		return nil, fmt.Errorf("RANK_API_BASE must not be empty")
	}

	logger.Info().
		Str("data_dir", cfg.DataDir).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
