package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tmorgan/bloodmoney/internal/ratelimit"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://us.api.battle.net/wow", "test-key")

		if c.baseURL != "https://us.api.battle.net/wow" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://us.api.battle.net/wow")
		}
		if c.apiKey != "test-key" {
			t.Errorf("apiKey = %q, want %q", c.apiKey, "test-key")
		}
		if c.locale != "en_US" {
			t.Errorf("locale = %q, want %q", c.locale, "en_US")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.retryBackoff != time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
		if c.limiter != nil {
			t.Error("limiter should be nil unless provided")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://us.api.battle.net/wow", "", WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with retries option", func(t *testing.T) {
		c := NewClient("https://us.api.battle.net/wow", "", WithRetries(5, 2*time.Second))
		if c.maxRetries != 5 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 5)
		}
		if c.retryBackoff != 2*time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 2*time.Second)
		}
	})

	t.Run("with unbounded retries", func(t *testing.T) {
		c := NewClient("https://us.api.battle.net/wow", "", WithRetries(-1, time.Second))
		if c.maxRetries != -1 {
			t.Errorf("maxRetries = %d, want -1", c.maxRetries)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://us.api.battle.net/wow", "", WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://us.api.battle.net/wow", "", WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})

	t.Run("with limiter option", func(t *testing.T) {
		lim := ratelimit.New(10, time.Second)
		c := NewClient("https://us.api.battle.net/wow", "", WithLimiter(lim))
		if c.limiter != lim {
			t.Error("limiter not set correctly")
		}
	})

	t.Run("with locale option", func(t *testing.T) {
		c := NewClient("https://eu.api.battle.net/wow", "", WithLocale("de_DE"))
		if c.locale != "de_DE" {
			t.Errorf("locale = %q, want %q", c.locale, "de_DE")
		}
	})
}

func TestEndpoint(t *testing.T) {
	t.Run("attaches locale and api key", func(t *testing.T) {
		c := NewClient("https://us.api.battle.net/wow", "secret-key")

		got := c.endpoint("/realm/status")
		if !strings.HasPrefix(got, "https://us.api.battle.net/wow/realm/status?") {
			t.Fatalf("endpoint = %q, want /realm/status prefix", got)
		}

		u, err := url.Parse(got)
		if err != nil {
			t.Fatalf("parse endpoint: %v", err)
		}
		query := u.Query()
		if query.Get("locale") != "en_US" {
			t.Errorf("locale = %q, want %q", query.Get("locale"), "en_US")
		}
		if query.Get("apikey") != "secret-key" {
			t.Errorf("apikey = %q, want %q", query.Get("apikey"), "secret-key")
		}
	})

	t.Run("no query without locale or key", func(t *testing.T) {
		c := NewClient("https://us.api.battle.net/wow", "", WithLocale(""))

		got := c.endpoint("/realm/status")
		if got != "https://us.api.battle.net/wow/realm/status" {
			t.Errorf("endpoint = %q, want bare path", got)
		}
	})
}
