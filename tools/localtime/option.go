package localtime

import (
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.timezonedb.com"

type Option func(*Config)

func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.apiKey = key
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeout = timeout
	}
}

// WithLocalZones answers from the local tz database instead of the remote
// API, for offline or keyless operation.
func WithLocalZones() Option {
	return func(c *Config) {
		c.localZones = true
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}

// WithClock overrides the clock used in local-zone mode.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}
