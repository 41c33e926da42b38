package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/spf13/viper"
)

const (
	ModelSourceFile   = "file"
	ModelSourceMinIO  = "minio"
	ModelSourceRemote = "remote"

	AlertStorePostgres = "postgres"
	AlertStoreMemory   = "memory"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig

	// Authentication & Security Configuration
	JWT JWTConfig

	// Monitoring & Notification Configuration
	Discord      DiscordConfig
	SMTP         SMTPConfig
	Notification NotificationConfig

	// Domain Configuration
	Risk  RiskConfig
	Alert AlertConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for PostgreSQL
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is the configuration for Redis. An empty host disables it.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Enabled reports whether a Redis host is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig is the configuration for MinIO
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// JWTConfig is the configuration for the JWT
type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

// DiscordConfig is the configuration for Discord webhook notifications
type DiscordConfig struct {
	BaseURL      string
	WebhookID    string
	WebhookToken string
}

// WebhookURL returns the full webhook URL, or "" when Discord is not configured.
func (c DiscordConfig) WebhookURL() string {
	if c.WebhookID == "" || c.WebhookToken == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/webhooks/%s/%s", strings.TrimRight(c.BaseURL, "/"), c.WebhookID, c.WebhookToken)
}

// SMTPConfig is the configuration for outbound e-mail. An empty host disables it.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Enabled reports whether an SMTP host is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// NotificationConfig throttles outbound notifications.
type NotificationConfig struct {
	RatePerMinute int
	Burst         int
}

// RiskConfig is the configuration for the risk scoring pipeline
type RiskConfig struct {
	ModerateThreshold int
	HighThreshold     int
	Model             ModelConfig
}

// ModelConfig selects and locates the scoring backend.
type ModelConfig struct {
	Source    string
	Path      string
	Bucket    string
	Object    string
	RemoteURL string
	Timeout   time.Duration
}

// AlertConfig is the configuration for the alert engine and its sweep
type AlertConfig struct {
	ResponseWindow       time.Duration
	ReescalationInterval time.Duration
	SweepInterval        time.Duration
	SweepBatchSize       int
	SweepLeaseTTL        time.Duration
	Store                string
}

// secrets are read from the process environment only and win over the file.
type secrets struct {
	JWTSecretKey        string `env:"JWT_SECRET_KEY"`
	PostgresPassword    string `env:"POSTGRES_PASSWORD"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	MinIOSecretKey      string `env:"MINIO_SECRET_KEY"`
	SMTPPassword        string `env:"SMTP_PASSWORD"`
	DiscordWebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	return load(viper.New(), env.Options{})
}

func load(v *viper.Viper, envOpts env.Options) (*Config, error) {
	// Set config file name and paths
	v.SetConfigName("dropout-config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/dropout/")

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	// Read config file (optional - will use env vars if file not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = v.GetString("environment.name")

	// Server
	cfg.HTTPServer.Host = v.GetString("server.host")
	cfg.HTTPServer.Port = v.GetInt("server.port")
	cfg.HTTPServer.Mode = v.GetString("server.mode")

	// Logger
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Postgres
	cfg.Postgres.Host = v.GetString("postgres.host")
	cfg.Postgres.Port = v.GetInt("postgres.port")
	cfg.Postgres.User = v.GetString("postgres.user")
	cfg.Postgres.Password = v.GetString("postgres.password")
	cfg.Postgres.DBName = v.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = v.GetString("postgres.sslmode")

	// Redis
	cfg.Redis.Host = v.GetString("redis.host")
	cfg.Redis.Port = v.GetInt("redis.port")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.UseTLS = v.GetBool("redis.use_tls")
	cfg.Redis.MaxRetries = v.GetInt("redis.max_retries")
	cfg.Redis.MinIdleConns = v.GetInt("redis.min_idle_conns")
	cfg.Redis.PoolSize = v.GetInt("redis.pool_size")
	cfg.Redis.PoolTimeout = v.GetDuration("redis.pool_timeout")
	cfg.Redis.ConnMaxIdleTime = v.GetDuration("redis.conn_max_idle_time")
	cfg.Redis.ConnMaxLifetime = v.GetDuration("redis.conn_max_lifetime")

	// MinIO
	cfg.MinIO.Endpoint = v.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = v.GetString("minio.access_key")
	cfg.MinIO.SecretKey = v.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = v.GetBool("minio.use_ssl")
	cfg.MinIO.Region = v.GetString("minio.region")
	cfg.MinIO.Bucket = v.GetString("minio.bucket")

	// JWT
	cfg.JWT.SecretKey = v.GetString("jwt.secret_key")
	cfg.JWT.TTL = v.GetDuration("jwt.ttl")

	// Discord
	cfg.Discord.BaseURL = v.GetString("discord.base_url")
	cfg.Discord.WebhookID = v.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = v.GetString("discord.webhook_token")

	// SMTP
	cfg.SMTP.Host = v.GetString("smtp.host")
	cfg.SMTP.Port = v.GetInt("smtp.port")
	cfg.SMTP.Username = v.GetString("smtp.username")
	cfg.SMTP.Password = v.GetString("smtp.password")
	cfg.SMTP.From = v.GetString("smtp.from")
	cfg.SMTP.Timeout = v.GetDuration("smtp.timeout")

	// Notification
	cfg.Notification.RatePerMinute = v.GetInt("notification.rate_per_minute")
	cfg.Notification.Burst = v.GetInt("notification.burst")

	// Risk
	cfg.Risk.ModerateThreshold = v.GetInt("risk.moderate_threshold")
	cfg.Risk.HighThreshold = v.GetInt("risk.high_threshold")
	cfg.Risk.Model.Source = v.GetString("risk.model.source")
	cfg.Risk.Model.Path = v.GetString("risk.model.path")
	cfg.Risk.Model.Bucket = v.GetString("risk.model.bucket")
	cfg.Risk.Model.Object = v.GetString("risk.model.object")
	cfg.Risk.Model.RemoteURL = v.GetString("risk.model.remote_url")
	cfg.Risk.Model.Timeout = v.GetDuration("risk.model.timeout")

	// Alert
	cfg.Alert.ResponseWindow = v.GetDuration("alert.response_window")
	cfg.Alert.ReescalationInterval = v.GetDuration("alert.reescalation_interval")
	cfg.Alert.SweepInterval = v.GetDuration("alert.sweep_interval")
	cfg.Alert.SweepBatchSize = v.GetInt("alert.sweep_batch_size")
	cfg.Alert.SweepLeaseTTL = v.GetDuration("alert.sweep_lease_ttl")
	cfg.Alert.Store = v.GetString("alert.store")

	if err := applySecrets(cfg, envOpts); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applySecrets(cfg *Config, opts env.Options) error {
	var s secrets
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return fmt.Errorf("error parsing secrets from environment: %w", err)
	}
	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(&cfg.JWT.SecretKey, s.JWTSecretKey)
	overlay(&cfg.Postgres.Password, s.PostgresPassword)
	overlay(&cfg.Redis.Password, s.RedisPassword)
	overlay(&cfg.MinIO.SecretKey, s.MinIOSecretKey)
	overlay(&cfg.SMTP.Password, s.SMTPPassword)
	overlay(&cfg.Discord.WebhookToken, s.DiscordWebhookToken)
	return nil
}

func setDefaults(v *viper.Viper) {
	// Environment
	v.SetDefault("environment.name", "production")

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.color_enabled", false)

	// Postgres
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.dbname", "dropout")
	v.SetDefault("postgres.sslmode", "disable")

	// Redis
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.pool_timeout", 4*time.Second)
	v.SetDefault("redis.conn_max_idle_time", 5*time.Minute)
	v.SetDefault("redis.conn_max_lifetime", 30*time.Minute)

	// MinIO
	v.SetDefault("minio.region", "us-east-1")
	v.SetDefault("minio.bucket", "models")

	// JWT
	v.SetDefault("jwt.ttl", 24*time.Hour)

	// Discord
	v.SetDefault("discord.base_url", "https://discord.com")

	// SMTP
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "alerts@dropout.local")
	v.SetDefault("smtp.timeout", 10*time.Second)

	// Notification
	v.SetDefault("notification.rate_per_minute", 60)
	v.SetDefault("notification.burst", 10)

	// Risk
	v.SetDefault("risk.moderate_threshold", 4)
	v.SetDefault("risk.high_threshold", 7)
	v.SetDefault("risk.model.source", ModelSourceFile)
	v.SetDefault("risk.model.path", "models/dropout_model.json")
	v.SetDefault("risk.model.object", "dropout_model.json")
	v.SetDefault("risk.model.timeout", 5*time.Second)

	// Alert
	v.SetDefault("alert.response_window", 24*time.Hour)
	v.SetDefault("alert.reescalation_interval", time.Hour)
	v.SetDefault("alert.sweep_interval", 15*time.Minute)
	v.SetDefault("alert.sweep_batch_size", 1000)
	v.SetDefault("alert.sweep_lease_ttl", 5*time.Minute)
	v.SetDefault("alert.store", AlertStorePostgres)
}

func validate(cfg *Config) error {
	// Validate JWT
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("jwt.secret_key must be at least 32 characters for security")
	}

	// Validate risk thresholds
	if cfg.Risk.ModerateThreshold < 1 || cfg.Risk.HighThreshold > 10 || cfg.Risk.ModerateThreshold >= cfg.Risk.HighThreshold {
		return fmt.Errorf("risk thresholds must satisfy 1 <= moderate_threshold < high_threshold <= 10")
	}

	// Validate model source
	switch cfg.Risk.Model.Source {
	case ModelSourceFile:
		if cfg.Risk.Model.Path == "" {
			return fmt.Errorf("risk.model.path is required for source %q", ModelSourceFile)
		}
	case ModelSourceMinIO:
		if cfg.MinIO.Endpoint == "" || cfg.Risk.Model.Object == "" {
			return fmt.Errorf("minio.endpoint and risk.model.object are required for source %q", ModelSourceMinIO)
		}
	case ModelSourceRemote:
		if cfg.Risk.Model.RemoteURL == "" {
			return fmt.Errorf("risk.model.remote_url is required for source %q", ModelSourceRemote)
		}
	default:
		return fmt.Errorf("risk.model.source must be one of file, minio, remote")
	}

	// Validate alert windows
	if cfg.Alert.ResponseWindow <= 0 || cfg.Alert.ReescalationInterval <= 0 || cfg.Alert.SweepInterval <= 0 {
		return fmt.Errorf("alert.response_window, alert.reescalation_interval and alert.sweep_interval must be positive")
	}
	if cfg.Alert.SweepBatchSize < 1 {
		return fmt.Errorf("alert.sweep_batch_size must be positive")
	}
	if cfg.Alert.Store != AlertStorePostgres && cfg.Alert.Store != AlertStoreMemory {
		return fmt.Errorf("alert.store must be postgres or memory")
	}

	// Validate notification throttling
	if cfg.Notification.RatePerMinute < 1 || cfg.Notification.Burst < 1 {
		return fmt.Errorf("notification.rate_per_minute and notification.burst must be positive")
	}

	return nil
}
