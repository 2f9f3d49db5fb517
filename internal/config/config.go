package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Package-level logger, JSON-formatted for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config holds the application configuration, loaded from environment variables
type Config struct {
	// Server configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"` // sqlite or postgres
	DBPath     string `json:"db_path"`   // sqlite only
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security configuration
	JWTSecret string `json:"jwt_secret"`
}

// String returns a representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBPath: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, JWTSecret: [REDACTED]}",
		c.Port, c.Host, c.DBDriver, c.DBPath, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.LogLevel)
}

// LoadConfig reads the configuration from environment variables.
// Returns an error if a variable has an invalid format.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port:       port,
		Host:       GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:   GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBPath:     GetEnvWithDefault("DB_PATH", "littlelemon.sqlite"),
		DBHost:     GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     GetEnvWithDefault("DB_PORT", "5432"),
		DBName:     GetEnvWithDefault("DB_NAME", "littlelemon"),
		DBUser:     GetEnvWithDefault("DB_USER", "littlelemon"),
		DBPassword: GetEnvWithDefault("DB_PASSWORD", ""),
		DBSSLMode:  GetEnvWithDefault("DB_SSLMODE", "disable"),
		LogLevel:   GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:  GetEnvWithDefault("JWT_SECRET", "secret"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// GetEnvWithDefault returns the environment variable value or the default
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable converted to the given type
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue
	}
}
