package attractions

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

const (
	ProviderID = "opentripmap"

	searchRadius = "100000"
	searchKinds  = "cultural,natural"
	searchLimit  = "10"
)

type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type Attraction struct {
	Name        string      `json:"name"`
	Kind        string      `json:"kind"`
	Coordinates Coordinates `json:"coordinates"`
}

type Result struct {
	Country     string       `json:"country"`
	Attractions []Attraction `json:"attractions"`
}

type geonameResponse struct {
	Status string   `json:"status"`
	Lon    *float64 `json:"lon"`
	Lat    *float64 `json:"lat"`
}

type radiusResponse struct {
	Features *[]struct {
		Properties struct {
			Name  string `json:"name"`
			Kinds string `json:"kinds"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Client finds cultural and natural points of interest via OpenTripMap.
// Every upstream call waits on a one request per second throttle.
type Client struct {
	cfg      providers.Config
	http     *providers.Client
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

func New(cfg providers.Config, clientOpts []providers.ClientOption, opts ...Option) (*Client, error) {
	if err := cfg.Validate(ProviderID, true); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:      cfg,
		http:     providers.NewClient(ProviderID, cfg, clientOpts...),
		throttle: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Attractions geocodes the country then lists named places within 100 km
// of that point.
func (c *Client) Attractions(ctx context.Context, country string) (*Result, error) {
	title := pkgstrings.TitleCase(country)

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	var geo geonameResponse
	err := c.http.GetJSON(ctx, providers.JoinURL(c.cfg.BaseURL, "geoname"),
		url.Values{"name": {title}, "apikey": {c.cfg.APIKey}}, nil, &geo)
	if err != nil {
		return nil, err
	}
	if geo.Status != "OK" || geo.Lat == nil || geo.Lon == nil {
		return nil, c.http.Protocol("geoname lookup for %s returned status %q", title, geo.Status)
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	var places radiusResponse
	err = c.http.GetJSON(ctx, providers.JoinURL(c.cfg.BaseURL, "radius"), url.Values{
		"radius": {searchRadius},
		"lon":    {strconv.FormatFloat(*geo.Lon, 'f', -1, 64)},
		"lat":    {strconv.FormatFloat(*geo.Lat, 'f', -1, 64)},
		"kinds":  {searchKinds},
		"limit":  {searchLimit},
		"apikey": {c.cfg.APIKey},
	}, nil, &places)
	if err != nil {
		return nil, err
	}
	if places.Features == nil {
		return nil, c.http.Protocol("radius response has no features")
	}

	out := []Attraction{}
	for _, f := range *places.Features {
		if f.Properties.Name == "" {
			continue
		}
		if len(f.Geometry.Coordinates) < 2 {
			return nil, c.http.Protocol("feature %q has no point geometry", f.Properties.Name)
		}
		out = append(out, Attraction{
			Name: f.Properties.Name,
			Kind: f.Properties.Kinds,
			Coordinates: Coordinates{
				Lon: f.Geometry.Coordinates[0],
				Lat: f.Geometry.Coordinates[1],
			},
		})
	}
	return &Result{Country: country, Attractions: out}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.throttle.Wait(ctx); err != nil {
		return providers.NewProviderError(providers.ErrorUnreachable, ProviderID, "throttle wait aborted", err)
	}
	return nil
}
