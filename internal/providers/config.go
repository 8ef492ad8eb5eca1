package providers

import (
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every upstream call when the config leaves it unset.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent identifies the service to upstreams that require one.
const DefaultUserAgent = "countries-api/1.0"

// Config is what every adapter needs to reach its upstream.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	UserAgent string
}

// Validate checks the endpoint and, when requireKey is set, the credential.
// The returned error is an ErrorNotConfigured ProviderError.
func (c Config) Validate(providerID string, requireKey bool) error {
	if requireKey && strings.TrimSpace(c.APIKey) == "" {
		return NewProviderError(ErrorNotConfigured, providerID, "missing API key", nil)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return NewProviderError(ErrorNotConfigured, providerID, "invalid base URL", err)
	}
	return nil
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}
