package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Email     EmailConfig     `mapstructure:"email"`
	Mailjet   MailjetConfig   `mapstructure:"mailjet"`
	Resend    ResendConfig    `mapstructure:"resend"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Events    EventsConfig    `mapstructure:"events"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SlogLevel parses Level, falling back to info for unknown names.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// AuthConfig holds API key authentication settings.
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// RateLimitConfig holds per-IP API rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
	IdleTTLSec        int     `mapstructure:"idle_ttl_sec"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SupabaseConfig holds Supabase project settings.
type SupabaseConfig struct {
	URL           string `mapstructure:"url"`
	ServiceKey    string `mapstructure:"service_key"`
	CustomerTable string `mapstructure:"customer_table"`
}

// EmailConfig holds provider-independent sender settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	DefaultLocale string `mapstructure:"default_locale"`
}

// MailjetConfig holds Mailjet API credentials and transport settings.
type MailjetConfig struct {
	APIKey     string `mapstructure:"api_key"`
	APISecret  string `mapstructure:"api_secret"`
	BaseURL    string `mapstructure:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// ResendConfig holds Resend API credentials.
type ResendConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// TemplatesConfig holds the defaults the built-in templates fall back to.
type TemplatesConfig struct {
	StoreName          string                   `mapstructure:"store_name"`
	CustomerRegistered CustomerRegisteredConfig `mapstructure:"customer_registered"`
}

// CustomerRegisteredConfig holds overrides for the welcome email.
type CustomerRegisteredConfig struct {
	Subject string `mapstructure:"subject"`
	Preview string `mapstructure:"preview"`
}

// EventsConfig holds domain event worker settings.
type EventsConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxRetry    int `mapstructure:"max_retry"`
}

// legacyEnv maps config keys to the environment names older deployments used.
var legacyEnv = map[string]string{
	"mailjet.api_key":                       "MJ_API_KEY",
	"mailjet.api_secret":                    "MJ_API_SECRET",
	"templates.store_name":                  "MJ_STORE_NAME",
	"templates.customer_registered.subject": "MJ_CUSTOMER_REGISTERED_SUBJECT",
	"templates.customer_registered.preview": "MJ_CUSTOMER_REGISTERED_PREVIEW",
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables use the STOREMAIL_ prefix and underscore separators.
// Example: STOREMAIL_SERVER_PORT overrides server.port in config.yaml.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Load .env file if it exists
	_ = godotenv.Load()

	v.SetEnvPrefix("STOREMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := "STOREMAIL_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("server.port", 8081)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.api_keys", []string{})
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "X-API-Key", "Authorization", "X-Request-ID"})
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.idle_ttl_sec", 600)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.service_key", "")
	v.SetDefault("supabase.customer_table", "customer")
	v.SetDefault("email.provider", "mailjet")
	v.SetDefault("email.from_address", "")
	v.SetDefault("email.from_name", "")
	v.SetDefault("email.default_locale", "en")
	v.SetDefault("mailjet.base_url", "https://api.mailjet.com")
	v.SetDefault("mailjet.timeout_sec", 10)
	v.SetDefault("mailjet.max_retries", 0)
	v.SetDefault("resend.api_key", "")
	v.SetDefault("templates.store_name", "")
	v.SetDefault("templates.customer_registered.subject", "")
	v.SetDefault("templates.customer_registered.preview", "")
	v.SetDefault("events.concurrency", 10)
	v.SetDefault("events.max_retry", 5)

	// Read config file (optional: env vars can provide everything)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Comma-separated lists arrive from env vars as a single string.
	cfg.Auth.APIKeys = splitList(cfg.Auth.APIKeys)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)

	return &cfg, nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
