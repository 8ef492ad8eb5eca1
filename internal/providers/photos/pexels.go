package photos

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

type pexelsResponse struct {
	TotalResults int `json:"total_results"`
	Photos       []struct {
		Alt          *string `json:"alt"`
		Photographer string  `json:"photographer"`
		URL          string  `json:"url"`
		Src          struct {
			Medium string `json:"medium"`
			Tiny   string `json:"tiny"`
		} `json:"src"`
	} `json:"photos"`
}

// Pexels searches photos on Pexels. The key goes in the Authorization header
// without a scheme.
type Pexels struct {
	cfg  providers.Config
	http *providers.Client
}

func NewPexels(cfg providers.Config, opts ...providers.ClientOption) (*Pexels, error) {
	if err := cfg.Validate("pexels", true); err != nil {
		return nil, err
	}
	return &Pexels{cfg: cfg, http: providers.NewClient("pexels", cfg, opts...)}, nil
}

func (p *Pexels) Name() string { return "Pexels" }

func (p *Pexels) Search(ctx context.Context, query string) (*Page, error) {
	q := url.Values{
		"query":    {pkgstrings.TitleCase(query)},
		"per_page": {strconv.Itoa(PerPage)},
	}
	header := http.Header{}
	header.Set("Authorization", p.cfg.APIKey)

	var resp pexelsResponse
	if err := p.http.GetJSON(ctx, p.cfg.BaseURL, q, header, &resp); err != nil {
		return nil, err
	}
	page := &Page{Photos: make([]Photo, 0, len(resp.Photos)), TotalResults: resp.TotalResults}
	for _, ph := range resp.Photos {
		page.Photos = append(page.Photos, Photo{
			URL:          ph.Src.Medium,
			Thumbnail:    ph.Src.Tiny,
			Description:  describe(ph.Alt),
			Photographer: ph.Photographer,
			SourceURL:    ph.URL,
			Source:       p.Name(),
		})
	}
	return page, nil
}
