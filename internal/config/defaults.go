package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL           = "https://us.api.battle.net/wow"
	DefaultLocale            = "en_US"
	DefaultAPITimeout        = 30 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryBackoff      = 1 * time.Second
	DefaultRateRequests      = 100
	DefaultRateWindow        = 1 * time.Second
	DefaultDBPort            = 5432
	DefaultDBSSLMode         = "prefer"
	DefaultMaxConns          = 10
	DefaultMinConns          = 2
	DefaultReconcileInterval = 1 * time.Hour
	DefaultSyncTimeout       = 5 * time.Minute
	DefaultPollInterval      = 20 * time.Minute
	DefaultPollConcurrency   = 10
	DefaultPollTimeout       = 10 * time.Minute
	DefaultBatchSize         = 1000
	DefaultFlushInterval     = 1 * time.Second
)

func (c *GathererConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Locale == "" {
		c.API.Locale = DefaultLocale
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Rate limit defaults
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = DefaultRateRequests
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = DefaultRateWindow
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Realm registry defaults
	if c.Realms.ReconcileInterval == 0 {
		c.Realms.ReconcileInterval = DefaultReconcileInterval
	}
	if c.Realms.SyncTimeout == 0 {
		c.Realms.SyncTimeout = DefaultSyncTimeout
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Concurrency == 0 {
		c.Poller.Concurrency = DefaultPollConcurrency
	}
	if c.Poller.Timeout == 0 {
		c.Poller.Timeout = DefaultPollTimeout
	}

	// Writers defaults
	if c.Writers.BatchSize == 0 {
		c.Writers.BatchSize = DefaultBatchSize
	}
	if c.Writers.FlushInterval == 0 {
		c.Writers.FlushInterval = DefaultFlushInterval
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
