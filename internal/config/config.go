// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Storage backend selectors for the entity store.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	StoreBackend   string `mapstructure:"STORE_BACKEND"`
	DataFile       string `mapstructure:"DATA_FILE"`
	ActivityLog    string `mapstructure:"ACTIVITY_LOG"`
	VAPIDKeyFile   string `mapstructure:"VAPID_KEY_FILE"`
	PushContact    string `mapstructure:"PUSH_CONTACT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	TracingEnabled bool   `mapstructure:"TRACING_ENABLED"`
	Env            string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config.
	// The config file may not exist yet, so this error is ignored.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("PORT", "5000")
	viper.SetDefault("STORE_BACKEND", BackendFile)
	viper.SetDefault("DATA_FILE", "data/stories.json")
	viper.SetDefault("ACTIVITY_LOG", "data/activity.log")
	viper.SetDefault("VAPID_KEY_FILE", "data/vapid.json")
	viper.SetDefault("PUSH_CONTACT", "mailto:admin@fable.dev")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.StoreBackend {
	case BackendFile:
		if c.DataFile == "" {
			return errors.New("DATA_FILE is required when STORE_BACKEND is 'file'")
		}
	case BackendMemory:
		// nothing to persist
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendFile, BackendMemory)
	}
	if c.ActivityLog == "" {
		return errors.New("ACTIVITY_LOG is required")
	}
	if c.VAPIDKeyFile == "" {
		return errors.New("VAPID_KEY_FILE is required")
	}

	if c.Env == "production" && c.AllowedOrigins == "*" {
		log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
	}

	return nil
}
