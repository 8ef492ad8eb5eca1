package photos

import (
	"context"
	"net/url"
	"strconv"

	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

type unsplashResponse struct {
	Total   int `json:"total"`
	Results []struct {
		AltDescription *string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"results"`
}

// Unsplash searches landscape photos on Unsplash.
type Unsplash struct {
	cfg  providers.Config
	http *providers.Client
}

func NewUnsplash(cfg providers.Config, opts ...providers.ClientOption) (*Unsplash, error) {
	if err := cfg.Validate("unsplash", true); err != nil {
		return nil, err
	}
	return &Unsplash{cfg: cfg, http: providers.NewClient("unsplash", cfg, opts...)}, nil
}

func (u *Unsplash) Name() string { return "Unsplash" }

func (u *Unsplash) Search(ctx context.Context, query string) (*Page, error) {
	q := url.Values{
		"query":       {pkgstrings.TitleCase(query)},
		"client_id":   {u.cfg.APIKey},
		"per_page":    {strconv.Itoa(PerPage)},
		"orientation": {"landscape"},
	}
	var resp unsplashResponse
	if err := u.http.GetJSON(ctx, providers.JoinURL(u.cfg.BaseURL, "search", "photos"), q, nil, &resp); err != nil {
		return nil, err
	}
	page := &Page{Photos: make([]Photo, 0, len(resp.Results)), TotalResults: resp.Total}
	for _, r := range resp.Results {
		page.Photos = append(page.Photos, Photo{
			URL:          r.URLs.Regular,
			Thumbnail:    r.URLs.Thumb,
			Description:  describe(r.AltDescription),
			Photographer: r.User.Name,
			SourceURL:    r.Links.HTML,
			Source:       u.Name(),
		})
	}
	return page, nil
}
