package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram
	BotToken string

	// Question source
	OpenTDBBaseURL string
	QuestionsFile  string
	FetchTimeout   int

	// Game defaults
	DefaultAmount     int
	MaxAmount         int
	DefaultDifficulty string
	DefaultCategory   string
	SessionTTLMinutes int

	// Application
	AppEnv   string
	LogLevel string
	Workers  int

	// Rate Limiting
	RateLimitPerUser int
	RateLimitPerChat int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken: getEnv("BOT_TOKEN", ""),

		OpenTDBBaseURL: getEnv("OPENTDB_BASE_URL", "https://opentdb.com/api.php"),
		QuestionsFile:  getEnv("QUESTIONS_FILE", ""),
		FetchTimeout:   getEnvInt("FETCH_TIMEOUT_SECONDS", 10),

		DefaultAmount:     getEnvInt("DEFAULT_QUESTION_AMOUNT", 5),
		MaxAmount:         getEnvInt("MAX_QUESTION_AMOUNT", 20),
		DefaultDifficulty: getEnv("DEFAULT_DIFFICULTY", "easy"),
		DefaultCategory:   getEnv("DEFAULT_CATEGORY", "computers"),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Workers:  getEnvInt("WORKERS", 4),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 20),
		RateLimitPerChat: getEnvInt("RATE_LIMIT_PER_CHAT", 60),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DefaultAmount < 1 {
		return fmt.Errorf("DEFAULT_QUESTION_AMOUNT must be at least 1")
	}
	if c.MaxAmount < c.DefaultAmount {
		return fmt.Errorf("MAX_QUESTION_AMOUNT must be at least DEFAULT_QUESTION_AMOUNT")
	}
	switch c.DefaultDifficulty {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("DEFAULT_DIFFICULTY must be easy, medium or hard")
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1")
	}
	return nil
}

func (c *Config) GetSessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *Config) GetFetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
