// Package config loads sitedeck configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sitedeck/internal/logging"
)

// DefaultAPIURL is the base URL of the sites service when none is configured.
const DefaultAPIURL = "http://localhost:3000"

// AppConfig holds application-wide configuration.
type AppConfig struct {
	APIURL      string        // base URL serving /api/sites
	CreatePath  string        // route of the site-creation flow, relative to APIURL
	HTTPTimeout time.Duration // zero means no client timeout
	LogFile     string        // TUI log destination; empty discards
	Logging     *logging.Config
	Telemetry   TelemetryConfig
	Server      ServerConfig
}

// TelemetryConfig configures OTLP trace export.
type TelemetryConfig struct {
	Endpoint    string // host:port of an OTLP/HTTP collector; empty disables export
	ServiceName string
	Insecure    bool // plain HTTP to the collector
}

// ServerConfig configures the fixture API server.
type ServerConfig struct {
	Addr        string
	DBPath      string
	HTTPLogPath string
}

// LoadEnvironment loads an optional .env file into the process environment.
// Returns true when a file was found.
func LoadEnvironment(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// LoadAppConfigFromEnv loads complete application configuration from environment variables.
func LoadAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		APIURL:      strings.TrimRight(getEnvWithDefault("SITEDECK_API_URL", DefaultAPIURL), "/"),
		CreatePath:  getEnvWithDefault("SITEDECK_CREATE_PATH", "/dashboard"),
		HTTPTimeout: getEnvDurationWithDefault("SITEDECK_HTTP_TIMEOUT", 0),
		LogFile:     getEnvWithDefault("SITEDECK_LOG_FILE", ""),
		Logging: &logging.Config{
			Level:  getEnvWithDefault("LOG_LEVEL", "info"),
			Format: getEnvWithDefault("LOG_FORMAT", "text"),
			Output: getEnvWithDefault("LOG_OUTPUT", "stderr"),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName: getEnvWithDefault("OTEL_SERVICE_NAME", "sitedeck"),
			Insecure:    getEnvWithDefault("OTEL_EXPORTER_OTLP_INSECURE", "true") == "true",
		},
		Server: ServerConfig{
			Addr:        getEnvWithDefault("SITEDECK_SERVE_ADDR", ":3000"),
			DBPath:      getEnvWithDefault("SITEDECK_DB_PATH", "sitedeck.db"),
			HTTPLogPath: getEnvWithDefault("SITEDECK_HTTP_LOG_PATH", ""),
		},
	}
}

// TUILogging returns the logging config used while the terminal UI owns the screen.
// Output goes to LogFile, or nowhere.
func (c *AppConfig) TUILogging() *logging.Config {
	out := c.LogFile
	if out == "" {
		out = "discard"
	}
	return &logging.Config{Level: c.Logging.Level, Format: c.Logging.Format, Output: out}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDurationWithDefault accepts Go durations ("5s") or bare seconds ("5").
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs := getEnvIntWithDefault(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
