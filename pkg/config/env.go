// Package config provides helpers for reading configuration from environment
// variables with typed defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// This function does not perform validation and does not log warnings.
// It is suitable for simple string configuration values.
//
// Example:
//
//	model := GetEnvString("SUMMARIZER_MODEL", "gpt-3.5-turbo")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the value of an environment variable as an integer.
//
// If the environment variable is not set, empty, or cannot be parsed as an
// integer, this function returns the default value and logs a warning.
//
// Example:
//
//	grant := GetEnvInt("SUBSCRIPTION_GRANT", 50)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Int("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvBool returns the value of an environment variable as a boolean.
//
// Accepted true values: "1", "t", "T", "true", "TRUE", "True"
// Accepted false values: "0", "f", "F", "false", "FALSE", "False"
//
// If the environment variable is not set, empty, or has an invalid value,
// this function returns the default value and logs a warning.
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return true
	case "0", "f", "F", "false", "FALSE", "False":
		return false
	default:
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Bool("default", defaultValue))
		return defaultValue
	}
}

// GetEnvDuration returns the value of an environment variable as a time.Duration.
//
// The value must be parseable by time.ParseDuration (e.g., "1m", "30s", "1h30m").
// On any parse failure the default is returned and a warning is logged.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvStringList returns a comma-separated list of strings from an
// environment variable. Values are trimmed and empties filtered out; the
// default is returned when the variable is unset or yields no values.
//
// Example:
//
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
