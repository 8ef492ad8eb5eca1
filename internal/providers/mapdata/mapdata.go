package mapdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"countries/internal/country/models"
	"countries/internal/providers"
	"countries/internal/providers/geocode"
	"countries/pkg/platform/sentinel"
)

const (
	mapillaryID = "mapillary"
	overpassID  = "overpass"

	mapillaryLimit = "5"
)

// Geocoder returns places, optionally with boundary geometry.
type Geocoder interface {
	Search(ctx context.Context, query string, withPolygon bool) ([]geocode.Place, error)
}

// RecordLookup finds the stored record for a country.
type RecordLookup interface {
	FindByName(ctx context.Context, name string) (*models.Country, error)
}

type Coordinates struct {
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	BoundingBox [4]float64 `json:"boundingbox"`
}

type Image struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	ThumbURL string  `json:"thumb_url"`
}

type POI struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Type string   `json:"type"`
}

// Result is everything a client needs to draw the country map.
type Result struct {
	Coordinates     Coordinates     `json:"coordinates"`
	Capital         string          `json:"capital"`
	GeoJSON         json.RawMessage `json:"geojson"`
	MapillaryImages []Image         `json:"mapillary_images"`
	POIs            []POI           `json:"pois"`
}

// Config holds the optional street imagery and POI upstreams plus the
// fallback boundary set. Mapillary is skipped when it has no key.
type Config struct {
	Mapillary  providers.Config
	Overpass   providers.Config
	Boundaries *Boundaries
}

// Client composes the map payload. Only the geocoder is required to succeed;
// imagery and POIs are best effort.
type Client struct {
	geocoder     Geocoder
	records      RecordLookup
	boundaries   *Boundaries
	mapillaryCfg providers.Config
	mapillary    *providers.Client
	overpassCfg  providers.Config
	overpass     *providers.Client
	logger       *slog.Logger
}

func New(cfg Config, geocoder Geocoder, records RecordLookup, logger *slog.Logger, opts ...providers.ClientOption) (*Client, error) {
	if geocoder == nil {
		return nil, errors.New("mapdata: geocoder is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		geocoder:   geocoder,
		records:    records,
		boundaries: cfg.Boundaries,
		logger:     logger,
	}
	if cfg.Mapillary.APIKey != "" {
		if err := cfg.Mapillary.Validate(mapillaryID, true); err != nil {
			return nil, err
		}
		c.mapillaryCfg = cfg.Mapillary
		c.mapillary = providers.NewClient(mapillaryID, cfg.Mapillary, opts...)
	}
	if cfg.Overpass.BaseURL != "" {
		if err := cfg.Overpass.Validate(overpassID, false); err != nil {
			return nil, err
		}
		c.overpassCfg = cfg.Overpass
		c.overpass = providers.NewClient(overpassID, cfg.Overpass, opts...)
	}
	return c, nil
}

// Map returns coordinates, capital, boundary, street imagery and POIs.
func (c *Client) Map(ctx context.Context, country string) (*Result, error) {
	places, err := c.geocoder.Search(ctx, country, true)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 || len(places[0].BoundingBox) != 4 {
		return nil, providers.NewProviderError(providers.ErrorNotFound, geocode.ProviderID, "country coordinates not found", nil)
	}
	place := places[0]
	coords, err := parseCoordinates(place)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorProtocol, geocode.ProviderID, "bad coordinates", err)
	}

	res := &Result{
		Coordinates:     coords,
		Capital:         c.capital(ctx, country),
		MapillaryImages: []Image{},
		POIs:            []POI{},
	}

	var g errgroup.Group
	g.Go(func() error {
		res.MapillaryImages = c.images(ctx, coords.BoundingBox)
		return nil
	})
	g.Go(func() error {
		res.POIs = c.pois(ctx, coords.BoundingBox)
		return nil
	})
	_ = g.Wait()

	geo := place.GeoJSON
	if len(bytes.TrimSpace(geo)) == 0 || bytes.Equal(bytes.TrimSpace(geo), []byte("null")) {
		feature, ok := c.boundaries.Lookup(country)
		if !ok {
			return nil, providers.NewProviderError(providers.ErrorNotFound, geocode.ProviderID, "country GeoJSON not found", nil)
		}
		geo = feature
	}
	res.GeoJSON = geo
	return res, nil
}

func parseCoordinates(p geocode.Place) (Coordinates, error) {
	lat, err := geocode.ParseCoord(p.Lat)
	if err != nil {
		return Coordinates{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := geocode.ParseCoord(p.Lon)
	if err != nil {
		return Coordinates{}, fmt.Errorf("lon: %w", err)
	}
	box, err := geocode.ParseBox(p.BoundingBox)
	if err != nil {
		return Coordinates{}, fmt.Errorf("boundingbox: %w", err)
	}
	return Coordinates{
		Lat:         lat,
		Lon:         lon,
		BoundingBox: [4]float64{box.South, box.North, box.West, box.East},
	}, nil
}

// capital reads the stored capital, falling back to the requested name when
// there is no record.
func (c *Client) capital(ctx context.Context, country string) string {
	if c.records == nil {
		return country
	}
	rec, err := c.records.FindByName(ctx, country)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			c.logger.WarnContext(ctx, "capital lookup failed", "country", country, "error", err)
		}
		return country
	}
	return rec.Capital
}

type mapillaryResponse struct {
	Data []struct {
		ID       string `json:"id"`
		ThumbURL string `json:"thumb_1024_url"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"data"`
}

func (c *Client) images(ctx context.Context, box [4]float64) []Image {
	out := []Image{}
	if c.mapillary == nil {
		return out
	}
	south, north, west, east := box[0], box[1], box[2], box[3]
	q := url.Values{
		"access_token": {c.mapillaryCfg.APIKey},
		"bbox":         {joinFloats(west, south, east, north)},
		"limit":        {mapillaryLimit},
		"fields":       {"id,geometry,thumb_1024_url"},
	}
	var resp mapillaryResponse
	if err := c.mapillary.GetJSON(ctx, c.mapillaryCfg.BaseURL, q, nil, &resp); err != nil {
		return out
	}
	for _, img := range resp.Data {
		if len(img.Geometry.Coordinates) < 2 {
			continue
		}
		out = append(out, Image{
			ID:       img.ID,
			Lon:      img.Geometry.Coordinates[0],
			Lat:      img.Geometry.Coordinates[1],
			ThumbURL: img.ThumbURL,
		})
	}
	return out
}

type overpassResponse struct {
	Elements []struct {
		Lat    *float64          `json:"lat"`
		Lon    *float64          `json:"lon"`
		Tags   map[string]string `json:"tags"`
		Center *struct {
			Lat *float64 `json:"lat"`
			Lon *float64 `json:"lon"`
		} `json:"center"`
	} `json:"elements"`
}

func (c *Client) pois(ctx context.Context, box [4]float64) []POI {
	out := []POI{}
	if c.overpass == nil {
		return out
	}
	south, north, west, east := box[0], box[1], box[2], box[3]
	area := joinFloats(south, west, north, east)
	query := fmt.Sprintf(`[out:json];
(
	node["tourism"="attraction"](%[1]s);
	way["tourism"="attraction"](%[1]s);
);
out center;`, area)

	var resp overpassResponse
	if err := c.overpass.PostFormJSON(ctx, c.overpassCfg.BaseURL, url.Values{"data": {query}}, &resp); err != nil {
		return out
	}
	for _, el := range resp.Elements {
		p := POI{Name: "Unknown", Type: "attraction", Lat: el.Lat, Lon: el.Lon}
		if n := el.Tags["name"]; n != "" {
			p.Name = n
		}
		if t := el.Tags["tourism"]; t != "" {
			p.Type = t
		}
		if el.Center != nil {
			if p.Lat == nil {
				p.Lat = el.Center.Lat
			}
			if p.Lon == nil {
				p.Lon = el.Center.Lon
			}
		}
		out = append(out, p)
	}
	return out
}

func joinFloats(vs ...float64) string {
	var b []byte
	for i, v := range vs {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, v, 'f', -1, 64)
	}
	return string(b)
}
