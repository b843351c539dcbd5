package config

import "time"

// GathererConfig is the root configuration for a gatherer instance.
type GathererConfig struct {
	Instance  InstanceConfig  `yaml:"instance"`
	API       APIConfig       `yaml:"api"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Database  DatabaseConfig  `yaml:"database"`
	Realms    RealmsConfig    `yaml:"realms"`
	Poller    PollerConfig    `yaml:"poller"`
	Writers   WritersConfig   `yaml:"writers"`
}

// InstanceConfig identifies this gatherer.
type InstanceConfig struct {
	ID     string `yaml:"id"`
	Region string `yaml:"region"`
}

// APIConfig holds Battle.net API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Locale       string        `yaml:"locale"`
	APIKey       string        `yaml:"api_key"` // Battle.net application key
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"` // -1 = retry without bound
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// RateLimitConfig caps outbound requests against the shared credential.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// DatabaseConfig holds the PostgreSQL connection for auction data.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// RealmsConfig holds realm registry settings.
type RealmsConfig struct {
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
	SyncTimeout       time.Duration `yaml:"sync_timeout"`
}

// PollerConfig holds auction poller settings.
type PollerConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// WritersConfig holds batch writer settings.
type WritersConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}
