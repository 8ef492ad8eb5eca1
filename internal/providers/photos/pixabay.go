package photos

import (
	"context"
	"net/url"
	"strconv"

	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

type pixabayResponse struct {
	TotalHits int `json:"totalHits"`
	Hits      []struct {
		WebformatURL string  `json:"webformatURL"`
		PreviewURL   string  `json:"previewURL"`
		Tags         *string `json:"tags"`
		User         string  `json:"user"`
		PageURL      string  `json:"pageURL"`
	} `json:"hits"`
}

// Pixabay searches safe-search photos on Pixabay.
type Pixabay struct {
	cfg  providers.Config
	http *providers.Client
}

func NewPixabay(cfg providers.Config, opts ...providers.ClientOption) (*Pixabay, error) {
	if err := cfg.Validate("pixabay", true); err != nil {
		return nil, err
	}
	return &Pixabay{cfg: cfg, http: providers.NewClient("pixabay", cfg, opts...)}, nil
}

func (p *Pixabay) Name() string { return "Pixabay" }

func (p *Pixabay) Search(ctx context.Context, query string) (*Page, error) {
	q := url.Values{
		"key":        {p.cfg.APIKey},
		"q":          {pkgstrings.TitleCase(query)},
		"image_type": {"photo"},
		"per_page":   {strconv.Itoa(PerPage)},
		"safesearch": {"true"},
	}
	var resp pixabayResponse
	if err := p.http.GetJSON(ctx, p.cfg.BaseURL, q, nil, &resp); err != nil {
		return nil, err
	}
	page := &Page{Photos: make([]Photo, 0, len(resp.Hits)), TotalResults: resp.TotalHits}
	for _, h := range resp.Hits {
		page.Photos = append(page.Photos, Photo{
			URL:          h.WebformatURL,
			Thumbnail:    h.PreviewURL,
			Description:  describe(h.Tags),
			Photographer: h.User,
			SourceURL:    h.PageURL,
			Source:       p.Name(),
		})
	}
	return page, nil
}
