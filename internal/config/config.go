package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"sheetlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Workspace WorkspaceConfig
	Log       LogConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// WorkspaceConfig holds intake and registry limits
type WorkspaceConfig struct {
	MaxFiles         int
	ParseConcurrency int
	MaxUploadBytes   int64
	PreviewRows      int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Workspace: *loadWorkspaceConfig(),
		Log:       LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
		Profiling: *loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadWorkspaceConfig() *WorkspaceConfig {
	return &WorkspaceConfig{
		MaxFiles:         getEnvIntOrDefault("MAX_FILES", 3),
		ParseConcurrency: getEnvIntOrDefault("PARSE_CONCURRENCY", 4),
		MaxUploadBytes:   int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 50*1024*1024)),
		PreviewRows:      getEnvIntOrDefault("PREVIEW_ROWS", 5),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("PORT must be numeric, got %q", config.Server.Port))
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("GIN_MODE must be debug, release or test, got %q", config.Server.GinMode))
	}
	if config.Workspace.MaxFiles < 1 {
		return errors.ConfigInvalid("MAX_FILES must be at least 1")
	}
	if config.Workspace.ParseConcurrency < 1 {
		return errors.ConfigInvalid("PARSE_CONCURRENCY must be at least 1")
	}
	if config.Workspace.MaxUploadBytes < 1 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Workspace.PreviewRows < 1 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be at least 1")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
