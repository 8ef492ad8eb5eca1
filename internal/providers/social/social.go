package social

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"countries/internal/providers"
	"countries/internal/ratelimit/quota"
	pkgstrings "countries/pkg/platform/strings"
)

const (
	ProviderID = "x"
	// QuotaKey names the shared daily budget for recent-search calls.
	QuotaKey = "social:x:recent-search"
)

// Post is one recent post about the country.
type Post struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	AuthorID  string `json:"author_id"`
}

type Result struct {
	Country string `json:"country"`
	Posts   []Post `json:"posts"`
}

type searchResponse struct {
	Data *[]Post `json:"data"`
}

// Client searches recent posts on X under a daily quota and a one request
// per second spacing.
type Client struct {
	cfg      providers.Config
	http     *providers.Client
	quota    quota.Limiter
	throttle *rate.Limiter
}

type Option func(*Client)

// WithThrottle replaces the default one request per second limiter.
func WithThrottle(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.throttle = l
		}
	}
}

func New(cfg providers.Config, limiter quota.Limiter, clientOpts []providers.ClientOption, opts ...Option) (*Client, error) {
	if err := cfg.Validate(ProviderID, true); err != nil {
		return nil, err
	}
	if limiter == nil {
		return nil, fmt.Errorf("social: quota limiter is required")
	}
	c := &Client{
		cfg:      cfg,
		http:     providers.NewClient(ProviderID, cfg, clientOpts...),
		quota:    limiter,
		throttle: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Posts returns recent travel, tourism and weather posts about country,
// deduplicated by text. The quota slot is reserved before the call.
func (c *Client) Posts(ctx context.Context, country string) (*Result, error) {
	d, err := c.quota.Allow(ctx, QuotaKey)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, ProviderID, "quota check failed", err)
	}
	if !d.Allowed {
		return nil, providers.NewProviderError(providers.ErrorQuotaExceeded, ProviderID,
			"daily X API request limit reached, try again tomorrow", nil)
	}
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, providers.NewProviderError(providers.ErrorUnreachable, ProviderID, "throttle wait aborted", err)
	}

	title := pkgstrings.TitleCase(country)
	q := url.Values{
		"query":        {fmt.Sprintf("%s (travel OR tourism OR weather) -is:retweet", title)},
		"max_results":  {"10"},
		"tweet.fields": {"created_at,author_id"},
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL, q, header, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, c.http.Protocol("response has no data")
	}

	posts := pkgstrings.DedupeBy(*resp.Data, func(p Post) string { return p.Text })
	if posts == nil {
		posts = []Post{}
	}
	return &Result{Country: country, Posts: posts}, nil
}
