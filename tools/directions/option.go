package directions

import (
	"net/http"
	"time"
)

const DefaultBaseURL = "https://maps.googleapis.com"

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

// WithMode sets the default travel mode for lookups without an explicit one.
func WithMode(mode Mode) Option {
	return func(c *Config) {
		c.mode = mode
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeout = timeout
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
