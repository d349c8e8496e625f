package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken   string
	TelegramDebug   bool
	BaseAdminChatID int64
	DatabaseURL     string

	// Параметры анализа
	AnalysisWindowDays  int
	Location            *time.Location
	SettingsCacheTTL    time.Duration
	TeamAnalysisWorkers int

	LogLevel logrus.Level
}

var instance *BotConfig
var once sync.Once

// GetBotConfig загружает конфигурацию один раз за процесс; ошибка конфигурации фатальна.
func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded, using process environment: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load читает конфигурацию из переменных окружения
func Load() (*BotConfig, error) {
	cfg := &BotConfig{
		TelegramToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:       getEnvAsBool("TELEGRAM_DEBUG", false),
		BaseAdminChatID:     getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		DatabaseURL:         getEnv("DATABASE_URL", "work_pattern.db"),
		AnalysisWindowDays:  int(getEnvAsInt("ANALYSIS_WINDOW_DAYS", 30)),
		SettingsCacheTTL:    getEnvAsDuration("SETTINGS_CACHE_TTL", 10*time.Minute),
		TeamAnalysisWorkers: int(getEnvAsInt("TEAM_ANALYSIS_WORKERS", 4)),
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("could not get bot token: TELEGRAM_BOT_TOKEN is empty")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("could not get db url: DATABASE_URL is empty")
	}
	if cfg.AnalysisWindowDays < 1 || cfg.AnalysisWindowDays > 365 {
		return nil, fmt.Errorf("ANALYSIS_WINDOW_DAYS must be within 1..365, got %d", cfg.AnalysisWindowDays)
	}
	if cfg.TeamAnalysisWorkers < 1 {
		cfg.TeamAnalysisWorkers = 1
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil && val > 0 {
		return val
	}

	return defaultVal
}
