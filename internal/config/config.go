package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database    DatabaseConfig `yaml:"database"`
	RabbitMQ    RabbitMQConfig `yaml:"rabbitmq"`
	Catalog     CatalogConfig  `yaml:"catalog"`
	ListService RemoteConfig   `yaml:"list_service"`
	Sync        SyncConfig     `yaml:"sync"`
	Covers      CoversConfig   `yaml:"covers"`
	HTTP        HTTPConfig     `yaml:"http"`
	LogLevel    string         `yaml:"log_level"`
}

// RabbitMQConfig is optional. An empty URL disables change publishing.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RemoteConfig describes an HTTP service the syncer talks to.
type RemoteConfig struct {
	BaseURL   string          `yaml:"base_url"`
	APIKey    string          `yaml:"api_key"`
	UserID    string          `yaml:"user_id"`
	Timeout   time.Duration   `yaml:"timeout"`
	Retry     RetryConfig     `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Breaker   BreakerConfig   `yaml:"breaker"`
}

type CatalogConfig struct {
	RemoteConfig `yaml:",inline"`
	ImageBaseURL string `yaml:"image_base_url"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type BreakerConfig struct {
	Failures uint32        `yaml:"failures"`
	Timeout  time.Duration `yaml:"timeout"`
}

type SyncConfig struct {
	// Cron specs. An empty spec leaves the job to manual triggers.
	FavoritesSchedule string        `yaml:"favorites_schedule"`
	ListsSchedule     string        `yaml:"lists_schedule"`
	ListIDs           []string      `yaml:"list_ids"`
	RunTimeout        time.Duration `yaml:"run_timeout"`
}

type CoversConfig struct {
	Dir string `yaml:"dir"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// SyncRateLimit is the number of sync triggers accepted per client IP and minute.
	SyncRateLimit int      `yaml:"sync_rate_limit"`
	CORSOrigins   []string `yaml:"cors_origins"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse expands ${VAR} references in data, decodes it and applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "media_syncer"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "content"
	}
	c.Catalog.RemoteConfig.setDefaults()
	c.ListService.setDefaults()
	if c.Catalog.RateLimit.RequestsPerSecond == 0 {
		c.Catalog.RateLimit.RequestsPerSecond = 20
	}
	if c.Sync.RunTimeout == 0 {
		c.Sync.RunTimeout = 10 * time.Minute
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.HTTP.SyncRateLimit == 0 {
		c.HTTP.SyncRateLimit = 10
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (r *RemoteConfig) setDefaults() {
	if r.Timeout == 0 {
		r.Timeout = 30 * time.Second
	}
	if r.Retry.MaxAttempts == 0 {
		r.Retry.MaxAttempts = 3
	}
	if r.Retry.InitialBackoff == 0 {
		r.Retry.InitialBackoff = 1 * time.Second
	}
	if r.Retry.MaxBackoff == 0 {
		r.Retry.MaxBackoff = 30 * time.Second
	}
	if r.RateLimit.Burst == 0 {
		r.RateLimit.Burst = 5
	}
	if r.Breaker.Failures == 0 {
		r.Breaker.Failures = 5
	}
	if r.Breaker.Timeout == 0 {
		r.Breaker.Timeout = 30 * time.Second
	}
}

func (c *Config) validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.ListService.BaseURL == "" {
		return fmt.Errorf("list_service.base_url is required")
	}
	if c.Sync.ListsSchedule != "" && len(c.Sync.ListIDs) == 0 {
		return fmt.Errorf("sync.lists_schedule is set but sync.list_ids is empty")
	}
	return nil
}
