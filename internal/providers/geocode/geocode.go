package geocode

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

const ProviderID = "nominatim"

// Place is one geocoder hit. Nominatim encodes coordinates as strings.
type Place struct {
	DisplayName string          `json:"display_name"`
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	BoundingBox []string        `json:"boundingbox"`
	GeoJSON     json.RawMessage `json:"geojson,omitempty"`
}

// Box is a parsed bounding box.
type Box struct {
	South, North, West, East float64
}

// Client resolves country names to coordinates.
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

// Search returns the raw geocoder hits for query. withPolygon asks for the
// boundary geometry and limits the result to one place.
func (c *Client) Search(ctx context.Context, query string, withPolygon bool) ([]Place, error) {
	q := url.Values{"q": {query}, "format": {"json"}}
	if withPolygon {
		q.Set("polygon_geojson", "1")
		q.Set("limit", "1")
	}
	var places []Place
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL, q, nil, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// BoundingBox returns the first hit's bounding box as sent upstream:
// [south, north, west, east].
func (c *Client) BoundingBox(ctx context.Context, country string) ([]string, error) {
	places, err := c.Search(ctx, country, false)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 || len(places[0].BoundingBox) != 4 {
		return nil, c.http.NotFound("no bounding box for %s", country)
	}
	return places[0].BoundingBox, nil
}

// Centroid is the midpoint of the first hit's bounding box.
func (c *Client) Centroid(ctx context.Context, country string) (lat, lon float64, err error) {
	country = pkgstrings.TitleCase(country)
	places, err := c.Search(ctx, country, false)
	if err != nil {
		return 0, 0, err
	}
	if len(places) == 0 || len(places[0].BoundingBox) != 4 {
		return 0, 0, c.http.NotFound("country not found: %s", country)
	}
	box, err := ParseBox(places[0].BoundingBox)
	if err != nil {
		return 0, 0, c.http.Protocol("bad bounding box: %v", err)
	}
	lat, lon = box.Center()
	return lat, lon, nil
}

// ParseBox parses a [south, north, west, east] string box.
func ParseBox(raw []string) (Box, error) {
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(raw[i], 64)
		if err != nil {
			return Box{}, err
		}
		v[i] = f
	}
	return Box{South: v[0], North: v[1], West: v[2], East: v[3]}, nil
}

// Center returns the box midpoint.
func (b Box) Center() (lat, lon float64) {
	return (b.South + b.North) / 2, (b.West + b.East) / 2
}

// ParseCoord parses one of Nominatim's string coordinates.
func ParseCoord(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
