package chat

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"countries/internal/providers"
)

const (
	ProviderID = "huggingface"

	maxNewTokens = 500
	temperature  = 0.7
)

// Reply is the assistant's answer.
type Reply struct {
	Reply string `json:"reply"`
}

// Client asks a hosted instruction model questions scoped to a country.
type Client struct {
	cfg  providers.Config
	http *providers.Client
}

func New(cfg providers.Config, opts ...providers.ClientOption) (*Client, error) {
	if err := cfg.Validate(ProviderID, true); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: providers.NewClient(ProviderID, cfg, opts...)}, nil
}

type generateRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters generateParams `json:"parameters"`
}

type generateParams struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	ReturnFullText bool    `json:"return_full_text"`
	Temperature    float64 `json:"temperature"`
}

type generation struct {
	GeneratedText *string `json:"generated_text"`
}

// Ask sends message with a system framing naming the country and returns the
// first generation, trimmed.
func (c *Client) Ask(ctx context.Context, country, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, c.http.InvalidInput("message is required")
	}
	payload := generateRequest{
		Inputs: fmt.Sprintf("You are a helpful assistant for questions about %s. %s", country, message),
		Parameters: generateParams{
			MaxNewTokens:   maxNewTokens,
			ReturnFullText: false,
			Temperature:    temperature,
		},
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	var out []generation
	if err := c.http.PostJSON(ctx, c.cfg.BaseURL, header, payload, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 || out[0].GeneratedText == nil {
		return nil, c.http.Protocol("response has no generated_text")
	}
	return &Reply{Reply: strings.TrimSpace(*out[0].GeneratedText)}, nil
}
