package safety

import (
	"context"
	"encoding/xml"
	"strings"

	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

const ProviderID = "travel-advisory"

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Advisory is one travel advisory. The feed has levels, not scores, so
// Score is always null.
type Advisory struct {
	Message string   `json:"message"`
	Score   *float64 `json:"score"`
	Updated string   `json:"updated"`
}

type Result struct {
	Country  string   `json:"country"`
	Advisory Advisory `json:"advisory"`
}

// Client reads the State Department travel advisory RSS feed.
type Client struct {
	cfg  providers.Config
	http *providers.Client
}

func New(cfg providers.Config, opts ...providers.ClientOption) (*Client, error) {
	if err := cfg.Validate(ProviderID, false); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: providers.NewClient(ProviderID, cfg, opts...)}, nil
}

// Advisory returns the first feed item whose title starts with the country
// name, compared case-insensitively.
func (c *Client) Advisory(ctx context.Context, country string) (*Result, error) {
	body, err := c.http.Do(ctx, providers.Request{URL: c.cfg.BaseURL})
	if err != nil {
		return nil, err
	}
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, providers.NewProviderError(providers.ErrorProtocol, ProviderID, "malformed RSS feed", err)
	}

	title := pkgstrings.TitleCase(country)
	prefix := strings.ToLower(title)
	for _, item := range feed.Channel.Items {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(item.Title)), prefix) {
			return &Result{
				Country: country,
				Advisory: Advisory{
					Message: item.Description,
					Updated: item.PubDate,
				},
			}, nil
		}
	}
	return nil, c.http.NotFound("safety data not found for %s", title)
}
