package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// ListenHost is the address the HTTP listener binds to (all IPv4 interfaces)
	ListenHost = "0.0.0.0"

	DefaultPort = 8000
	MaxPort     = 65535
)

// ErrInvalidPort is returned when PORT is set but is not a valid port number
var ErrInvalidPort = errors.New("invalid PORT")

// Config holds all application configuration
type Config struct {
	Port              int
	AllowedOrigins    []string
	StaticDir         string
	BodyLimit         int
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	TrustProxyHeaders bool
	LogLevel          string
	ClickHouse        ClickHouseConfig
	Redis             RedisConfig
	Postgres          PostgresConfig
}

// ClickHouseConfig holds ClickHouse connection settings
type ClickHouseConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	DSN      string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	Endpoint string
}

// PostgresConfig holds the PostgreSQL connection string
type PostgresConfig struct {
	URL string
}

// Load reads configuration from environment variables.
// The only hard failure is a malformed PORT; everything else falls back to defaults.
func Load() (*Config, error) {
	port, err := getEnvAsPort("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:              port,
		AllowedOrigins:    getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		StaticDir:         getEnv("STATIC_DIR", "public"),
		BodyLimit:         getEnvAsInt("BODY_LIMIT_BYTES", 4*1024*1024),
		IdleTimeout:       time.Duration(getEnvAsInt("IDLE_TIMEOUT_SECONDS", 5)) * time.Second,
		ShutdownTimeout:   time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		TrustProxyHeaders: getEnvAsBool("TRUST_PROXY_HEADERS", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ClickHouse: ClickHouseConfig{
			Host:     getEnv("CLICKHOUSE_HOST", ""),
			Port:     getEnv("CLICKHOUSE_PORT", "9000"),
			Database: getEnv("CLICKHOUSE_DATABASE", "default"),
			User:     getEnv("CLICKHOUSE_USER", "default"),
			Password: getEnv("CLICKHOUSE_PASSWORD", ""),
			DSN:      getEnv("CLICKHOUSE_DSN", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Endpoint: getEnv("REDIS_ENDPOINT", ""),
		},
		Postgres: PostgresConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
	}, nil
}

// Addr returns the host:port the HTTP server binds to
func (c *Config) Addr() string {
	return net.JoinHostPort(ListenHost, strconv.Itoa(c.Port))
}

// Enabled reports whether a ClickHouse server was configured
func (c *ClickHouseConfig) Enabled() bool {
	return c.DSN != "" || c.Host != ""
}

func (c *ClickHouseConfig) GetClickHouseDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	dsn := "clickhouse://"
	if c.User != "" {
		dsn += c.User
		if c.Password != "" {
			dsn += ":" + c.Password
		}
		dsn += "@"
	}
	return dsn + c.Host + ":" + c.Port + "/" + c.Database
}

// Enabled reports whether a Redis server was configured
func (r *RedisConfig) Enabled() bool {
	return r.Endpoint != "" || r.Host != ""
}

func (r *RedisConfig) GetRedisAddr() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return r.Host + ":" + r.Port
}

// Enabled reports whether a PostgreSQL database was configured
func (p *PostgresConfig) Enabled() bool {
	return p.URL != ""
}

// ParsePort parses a base-10 port number in the range 0-65535.
// Surrounding whitespace and a single leading '+' are ignored.
func ParsePort(value string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "+")
	if trimmed == "" || strings.IndexFunc(trimmed, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidPort, value)
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil || port > MaxPort {
		return 0, fmt.Errorf("%w: %q is out of range 0-%d", ErrInvalidPort, value, MaxPort)
	}
	return port, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsPort defaults only when key is unset; a set but empty value is invalid
func getEnvAsPort(key string, defaultValue int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}
	return ParsePort(value)
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
