// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed CORS origins (default: *)
}

// StoreConfig holds persistence configuration. The SQLite database and the
// search index both live under DataPath.
type StoreConfig struct {
	DataPath string
}

// RateLimitConfig holds per-client request rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64 // Requests per second per client
	Burst   int     // Burst size per client
}

// Load reads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	dataPath := flag.String("data-path", "", "Base path for database and search index")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")
	rateLimitRPS := flag.String("rate-limit-rps", "", "Requests per second per client (default: 10)")
	rateLimitBurst := flag.String("rate-limit-burst", "", "Burst size per client (default: 20)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	return load(loadOptions{
		env:            *env,
		logLevel:       *logLevel,
		serverName:     *serverName,
		serverPort:     *serverPort,
		readTimeout:    *readTimeout,
		writeTimeout:   *writeTimeout,
		idleTimeout:    *idleTimeout,
		dataPath:       *dataPath,
		corsOrigins:    *corsOrigins,
		rateLimitRPS:   *rateLimitRPS,
		rateLimitBurst: *rateLimitBurst,
		envFile:        *envFile,
	})
}

// loadOptions carries raw flag values so load can be tested without
// touching the global flag set.
type loadOptions struct {
	env            string
	logLevel       string
	serverName     string
	serverPort     string
	readTimeout    string
	writeTimeout   string
	idleTimeout    string
	dataPath       string
	corsOrigins    string
	rateLimitRPS   string
	rateLimitBurst string
	envFile        string
}

func load(opts loadOptions) (*Config, error) {
	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(opts.envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(opts.env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(opts.logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Name: getConfigValue(opts.serverName, "SERVER_NAME", "BookDen Server"),
			Port: getConfigValue(opts.serverPort, "SERVER_PORT", "8080"),
		},
		Store: StoreConfig{
			DataPath: getConfigValue(opts.dataPath, "DATA_PATH", ""),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolConfigValue("", "RATE_LIMIT_ENABLED", true),
			RPS:     getFloatConfigValue(opts.rateLimitRPS, "RATE_LIMIT_RPS", 10),
			Burst:   getIntConfigValue(opts.rateLimitBurst, "RATE_LIMIT_BURST", 20),
		},
	}

	origins := getConfigValue(opts.corsOrigins, "CORS_ORIGINS", "*")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, origin)
		}
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(opts.readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid read timeout: %w", err)
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(opts.writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid write timeout: %w", err)
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(opts.idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid idle timeout: %w", err)
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Store.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}

	return nil
}

// DatabasePath returns the SQLite database file path under the data path.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Store.DataPath, "bookden.db")
}

// SearchPath returns the directory for the search index under the data path.
func (c *Config) SearchPath() string {
	return filepath.Join(c.Store.DataPath, "search")
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/BookDen/data when unset.
func (c *Config) expandDataPath() error {
	if c.Store.DataPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.Store.DataPath = filepath.Join(homeDir, "BookDen", "data")
		return nil
	}

	path := c.Store.DataPath
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = abs
	}

	c.Store.DataPath = filepath.Clean(path)
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
// Existing environment variables are not overwritten.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- config file path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
