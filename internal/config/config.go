package config

import (
	"os"
	"strconv"
	"time"

	"edadash/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `validate:"required"`
	API     APIConfig     `validate:"required"`
	Data    DataConfig    `validate:"required"`
	Columns ColumnsConfig `validate:"required"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port     string `validate:"required,numeric"`
	GinMode  string `validate:"oneof=debug release test"`
	LogLevel string `validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE error warn info debug trace"`
}

// APIConfig holds settings for the headless JSON API
type APIConfig struct {
	Port string `validate:"required,numeric"`
}

// DataConfig holds data source and upload settings
type DataConfig struct {
	DefaultPath string
	Root        string        `validate:"omitempty,dir"`
	MaxUploadMB int           `validate:"min=1,max=1024"`
	UploadTTL   time.Duration `validate:"min=1s"`
}

// ColumnsConfig names the well-known dataset columns
type ColumnsConfig struct {
	Date    string `validate:"required"`
	Count   string `validate:"required"`
	Session string `validate:"required"`
	Label   string `validate:"required"`
}

// MaxUploadBytes returns the upload limit in bytes
func (d DataConfig) MaxUploadBytes() int64 {
	return int64(d.MaxUploadMB) * 1024 * 1024
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		API:     *loadAPIConfig(),
		Data:    *loadDataConfig(),
		Columns: *loadColumnsConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:     getEnvOrDefault("PORT", "8080"),
		GinMode:  getEnvOrDefault("GIN_MODE", "debug"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func loadAPIConfig() *APIConfig {
	return &APIConfig{
		Port: getEnvOrDefault("API_PORT", "8081"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		DefaultPath: getEnvOrDefault("DATA_PATH", ""),
		Root:        getEnvOrDefault("DATA_ROOT", ""),
		MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 50),
		UploadTTL:   getEnvDurationOrDefault("UPLOAD_TTL", 30*time.Minute),
	}
}

func loadColumnsConfig() *ColumnsConfig {
	return &ColumnsConfig{
		Date:    getEnvOrDefault("DATE_COLUMN", "Workshop Date"),
		Count:   getEnvOrDefault("COUNT_COLUMN", "Entry Count"),
		Session: getEnvOrDefault("SESSION_COLUMN", "Time in Session"),
		Label:   getEnvOrDefault("LABEL_COLUMN", "OTO/Non OTO"),
	}
}

func validateConfig(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
