// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// Validation constants
	minJWTLength = 32
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	FrontendURL    string      `mapstructure:"FRONTEND_URL" yaml:"frontend_url"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely (safe default).
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"MAX_IDLE_CONNS" yaml:"max_idle_conns"`
	ConnMaxLife  string `mapstructure:"CONN_MAX_LIFE" yaml:"conn_max_life"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and other
// URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS" yaml:"address"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	DB           int    `mapstructure:"DB" yaml:"db"`
	UseTLS       bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	PoolSize     int    `mapstructure:"POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
}

// AuthConfig holds JWT signing and token lifetime settings.
type AuthConfig struct {
	JWTSecretKey string `mapstructure:"JWT_SECRET_KEY" yaml:"jwt_secret_key"`
	// AccessTokenMinutes is the access token lifetime in minutes.
	AccessTokenMinutes int `mapstructure:"ACCESS_TOKEN_MINUTES" yaml:"access_token_minutes"`
	// RefreshTokenDays is the refresh token lifetime in days.
	RefreshTokenDays int `mapstructure:"REFRESH_TOKEN_DAYS" yaml:"refresh_token_days"`
}

// CompletionConfig holds configuration for the upstream chat completion API.
type CompletionConfig struct {
	APIKey  string `mapstructure:"API_KEY" yaml:"api_key"`
	BaseURL string `mapstructure:"BASE_URL" yaml:"base_url"`
	Model   string `mapstructure:"MODEL" yaml:"model"`
	// TimeoutSeconds is the HTTP client timeout for completion requests
	TimeoutSeconds int     `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
	MaxTokens      int     `mapstructure:"MAX_TOKENS" yaml:"max_tokens"`
	Temperature    float64 `mapstructure:"TEMPERATURE" yaml:"temperature"`
}

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// Maximum requests per minute for auth endpoints (login, register, refresh)
	AuthRequestsPerMinute int `mapstructure:"AUTH_REQUESTS_PER_MINUTE" yaml:"auth_requests_per_minute"`
	// Maximum requests per minute per user for authenticated API endpoints
	APIRequestsPerMinute int `mapstructure:"API_REQUESTS_PER_MINUTE" yaml:"api_requests_per_minute"`
	// Window duration in seconds for rate limiting
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server     ServerConfig     `mapstructure:"SERVER" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"DATABASE" yaml:"database"`
	Redis      RedisConfig      `mapstructure:"REDIS" yaml:"redis"`
	Auth       AuthConfig       `mapstructure:"AUTH" yaml:"auth"`
	Completion CompletionConfig `mapstructure:"COMPLETION" yaml:"completion"`
	RateLimit  RateLimitConfig  `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "littlesteps_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("DATABASE.MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("AUTH.ACCESS_TOKEN_MINUTES", 15)
	v.SetDefault("AUTH.REFRESH_TOKEN_DAYS", 7)
	v.SetDefault("COMPLETION.BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("COMPLETION.MODEL", "gpt-4o-mini")
	v.SetDefault("COMPLETION.TIMEOUT_SECONDS", 30)
	v.SetDefault("COMPLETION.MAX_TOKENS", 500)
	v.SetDefault("COMPLETION.TEMPERATURE", 0.7)
	v.SetDefault("RATE_LIMIT.AUTH_REQUESTS_PER_MINUTE", 10)
	v.SetDefault("RATE_LIMIT.API_REQUESTS_PER_MINUTE", 120)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables
	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.FRONTEND_URL", "FRONTEND_URL"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		// Database config
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Auth config
		{"AUTH.JWT_SECRET_KEY", "JWT_SECRET_KEY"},
		{"AUTH.ACCESS_TOKEN_MINUTES", "AUTH_ACCESS_TOKEN_MINUTES"},
		{"AUTH.REFRESH_TOKEN_DAYS", "AUTH_REFRESH_TOKEN_DAYS"},
		// Completion config
		{"COMPLETION.API_KEY", "COMPLETION_API_KEY"},
		{"COMPLETION.BASE_URL", "COMPLETION_BASE_URL"},
		{"COMPLETION.MODEL", "COMPLETION_MODEL"},
		{"COMPLETION.TIMEOUT_SECONDS", "COMPLETION_TIMEOUT_SECONDS"},
		{"COMPLETION.MAX_TOKENS", "COMPLETION_MAX_TOKENS"},
		{"COMPLETION.TEMPERATURE", "COMPLETION_TEMPERATURE"},
		// Rate limit config
		{"RATE_LIMIT.AUTH_REQUESTS_PER_MINUTE", "RATE_LIMIT_AUTH_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.API_REQUESTS_PER_MINUTE", "RATE_LIMIT_API_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	env := v.GetString("SERVER.ENVIRONMENT")
	log.Infow("Configuration loaded",
		"environment", env,
		"server_port", v.GetString("SERVER.PORT"),
		"db_host", v.GetString("DATABASE.HOST"),
		"allowed_origins", v.GetString("SERVER.ALLOWED_ORIGINS"),
		"trusted_proxies", v.GetStringSlice("SERVER.TRUSTED_PROXIES"),
		"completion_model", v.GetString("COMPLETION.MODEL"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	// Validate Server Config
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	// Validate AllowedOrigins format if not wildcard
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	// Validate Database Config
	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Password == "" {
		log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	// Validate Redis Config
	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}
	if cfg.Redis.Password == "" && cfg.Redis.UseTLS {
		log.Warn("Redis password is not set, but TLS is enabled. Ensure this is correct for your Redis provider.")
	}

	// Validate Auth Config
	if len(cfg.Auth.JWTSecretKey) < minJWTLength {
		return fmt.Errorf("JWT secret key must be at least %d characters long", minJWTLength)
	}
	if cfg.Auth.AccessTokenMinutes <= 0 {
		return fmt.Errorf("access token lifetime must be positive")
	}
	if cfg.Auth.RefreshTokenDays <= 0 {
		return fmt.Errorf("refresh token lifetime must be positive")
	}

	// Validate Completion config
	if err := validateCompletionConfig(&cfg.Completion, log); err != nil {
		return err
	}

	// Validate RateLimit config
	if cfg.RateLimit.AuthRequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit auth requests per minute must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	return nil
}

// validateCompletionConfig validates the chat completion API configuration.
// A missing API key is allowed; the chat service falls back to a canned reply.
func validateCompletionConfig(cfg *CompletionConfig, log *zap.SugaredLogger) error {
	if cfg.BaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
			return fmt.Errorf("invalid completion base URL: %w", err)
		}
	}
	if cfg.APIKey == "" {
		log.Warn("Completion API key not set, chat responses will use the fallback message")
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("completion timeout must be positive")
	}
	if cfg.MaxTokens <= 0 {
		return fmt.Errorf("completion max tokens must be positive")
	}
	if cfg.Temperature < 0 {
		return fmt.Errorf("completion temperature must not be negative")
	}
	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
