package app

import (
	"chatbot-backend/internal/config"
	"chatbot-backend/internal/store"
)

// Config holds all application dependencies and configuration
type Config struct {
	// Entity store holding users, conversations and messages
	Store store.Store
	// Centralized application configuration
	AppConfig *config.AppConfig
}

// NewConfig creates a new application configuration
func NewConfig(st store.Store, appConfig *config.AppConfig) *Config {
	return &Config{
		Store:     st,
		AppConfig: appConfig,
	}
}
