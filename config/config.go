package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	DBPath         string
	LogLevel       string
	SoilIDEndpoint string
	SoilIDAPIKey   string
	SoilIDTimeout  time.Duration
	ExportSheet    string
	DevLogin       bool
}

// Load reads the environment, after merging any .env files found.
func Load(files ...string) AppConfig {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("[cfg] no .env file loaded", "err", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	timeout, err := strconv.Atoi(get("SOIL_ID_TIMEOUT_SEC", "25"))
	if err != nil || timeout <= 0 {
		timeout = 25
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "soilsync.db"),
		LogLevel:       get("LOG_LEVEL", "info"),
		SoilIDEndpoint: get("SOIL_ID_ENDPOINT", ""),
		SoilIDAPIKey:   get("SOIL_ID_API_KEY", ""),
		SoilIDTimeout:  time.Duration(timeout) * time.Second,
		ExportSheet:    get("EXPORT_SHEET", "Soil Data"),
	}
	cfg.DevLogin, _ = strconv.ParseBool(get("DEV_LOGIN", "false"))
	slog.Info("[cfg] loaded",
		"port", cfg.Port,
		"db_path", cfg.DBPath,
		"log_level", cfg.LogLevel,
		"soil_id_endpoint", cfg.SoilIDEndpoint,
		"soil_id_api_key_set", cfg.SoilIDAPIKey != "",
		"soil_id_timeout", cfg.SoilIDTimeout,
		"dev_login", cfg.DevLogin,
	)
	return cfg
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger: JSON lines on stderr.
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLevel(level)}))
}
