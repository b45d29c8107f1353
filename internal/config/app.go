package config

import (
	"os"
	"time"

	"chatbot-backend/internal/logger"

	"github.com/sirupsen/logrus"
)

// defaultUserID is the single supported user in this scope. Every HTTP
// operation acts on this user's data until multi-user support lands.
const defaultUserID int64 = 1

const (
	defaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultModelName     = "qwen/qwen2.5-72b-instruct:free"
	defaultLLMTimeout    = 30 * time.Second
)

// AppConfig holds all application configuration
type AppConfig struct {
	Server ServerConfig
	LLM    LLMConfig
	Chat   ChatConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// LLMConfig holds completion provider configuration
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ChatConfig holds chat workflow configuration
type ChatConfig struct {
	DefaultUserID int64
}

// LoadConfig loads application configuration from environment
func LoadConfig() *AppConfig {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		logger.Log.Warn("OPENROUTER_API_KEY environment variable not set")
	}

	return &AppConfig{
		Server: ServerConfig{
			Port: getEnvOrDefault("SERVER_PORT", "8080"),
		},
		LLM: LLMConfig{
			APIKey:  apiKey,
			BaseURL: getEnvOrDefault("OPENROUTER_URL", defaultOpenRouterURL),
			Model:   getEnvOrDefault("AI_MODEL_NAME", defaultModelName),
			Timeout: getEnvAsDuration("OPENROUTER_TIMEOUT", defaultLLMTimeout),
		},
		Chat: ChatConfig{
			DefaultUserID: defaultUserID,
		},
	}
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid duration value, using default")
		return defaultValue
	}
	return value
}
