package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by TASK_STORE
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Store   StoreConfig
	Log     LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB connection details
type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration // per-operation timeout
}

// StoreConfig selects the task store implementation
type StoreConfig struct {
	Driver string
}

// LogConfig holds request logging configuration
type LogConfig struct {
	AccessLogPath string // empty disables the access log
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	uri := getEnv("MONGO_URI", "mongodb://localhost:27017/todoApp")

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			GinMode:         getEnv("GIN_MODE", ""),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		MongoDB: MongoDBConfig{
			URI:        uri,
			Database:   getEnv("MONGODB_DATABASE", DatabaseFromURI(uri, "todoApp")),
			Collection: getEnv("MONGODB_COLLECTION", "todos"),
			Timeout:    getEnvDuration("MONGODB_TIMEOUT", 5*time.Second),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("TASK_STORE", StoreMongo)),
		},
		Log: LogConfig{
			AccessLogPath: getEnvAllowEmpty("ACCESS_LOG", "access.log"),
		},
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateConfig validates that required configuration values are present
func ValidateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", config.Server.Port)
	}

	switch config.Store.Driver {
	case StoreMongo:
		if config.MongoDB.URI == "" {
			return fmt.Errorf("MONGO_URI is required when TASK_STORE=%s", StoreMongo)
		}
		if config.MongoDB.Database == "" {
			return fmt.Errorf("MONGODB_DATABASE is required")
		}
		if config.MongoDB.Collection == "" {
			return fmt.Errorf("MONGODB_COLLECTION is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("TASK_STORE must be %q or %q, got %q", StoreMongo, StoreMemory, config.Store.Driver)
	}

	if config.MongoDB.Timeout <= 0 {
		return fmt.Errorf("MONGODB_TIMEOUT must be positive")
	}
	return nil
}

// DatabaseFromURI returns the database named in the path of a MongoDB URI
func DatabaseFromURI(uri, fallback string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return fallback
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return fallback
}

// Helper functions for environment variable access
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty lets an explicitly empty variable override the default
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
