package encyclopedia

import (
	"context"
	"strings"

	"countries/internal/providers"
)

const ProviderID = "wikipedia"

// Client reads page summaries from the Wikipedia REST API.
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

type summaryResponse struct {
	Extract string `json:"extract"`
}

// Summary returns the lead extract of the page titled title. A page without
// an extract is reported as not found.
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	page := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	var resp summaryResponse
	if err := c.http.GetJSON(ctx, providers.JoinURL(c.cfg.BaseURL, page), nil, nil, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Extract) == "" {
		return "", c.http.NotFound("no summary for %s", title)
	}
	return resp.Extract, nil
}
