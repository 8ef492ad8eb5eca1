package weather

import (
	"context"
	"net/url"
	"strconv"

	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

const ProviderID = "open-meteo"

// MaxDays caps the daily forecast.
const MaxDays = 7

// Geocoder resolves a country to a single point.
type Geocoder interface {
	Centroid(ctx context.Context, country string) (lat, lon float64, err error)
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Current struct {
	Temperature *float64 `json:"temperature"`
	Weather     string   `json:"weather"`
	WindSpeed   *float64 `json:"wind_speed"`
}

type Day struct {
	Date              string   `json:"date"`
	MaxTemp           *float64 `json:"max_temp"`
	MinTemp           *float64 `json:"min_temp"`
	PrecipitationProb *float64 `json:"precipitation_prob"`
	Weather           string   `json:"weather"`
}

// Report is the current conditions plus a short daily forecast.
type Report struct {
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
	Current     Current     `json:"current"`
	Daily       []Day       `json:"daily"`
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature"`
		WindSpeed   *float64 `json:"windspeed"`
		WeatherCode *int     `json:"weathercode"`
	} `json:"current_weather"`
	Daily *struct {
		Time          []string   `json:"time"`
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		Precipitation []*float64 `json:"precipitation_probability_max"`
		WeatherCode   []*int     `json:"weathercode"`
	} `json:"daily"`
}

// Client fetches forecasts from Open-Meteo at the country's centroid.
type Client struct {
	cfg      providers.Config
	http     *providers.Client
	geocoder Geocoder
}

func New(cfg providers.Config, geocoder Geocoder, opts ...providers.ClientOption) (*Client, error) {
	if err := cfg.Validate(ProviderID, false); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: providers.NewClient(ProviderID, cfg, opts...), geocoder: geocoder}, nil
}

// Forecast returns current conditions and up to MaxDays daily entries.
func (c *Client) Forecast(ctx context.Context, country string) (*Report, error) {
	lat, lon, err := c.geocoder.Centroid(ctx, pkgstrings.TitleCase(country))
	if err != nil {
		return nil, err
	}

	q := url.Values{
		"latitude":        {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current_weather": {"true"},
		"daily":           {"temperature_2m_max,temperature_2m_min,precipitation_probability_max,weathercode"},
		"timezone":        {"auto"},
	}
	var resp forecastResponse
	if err := c.http.GetJSON(ctx, c.cfg.BaseURL, q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.CurrentWeather == nil || resp.Daily == nil {
		return nil, c.http.Protocol("response has no current_weather or daily section")
	}
	// A missing code would otherwise decode as 0, "Clear sky".
	if resp.CurrentWeather.WeatherCode == nil {
		return nil, c.http.Protocol("current_weather has no weathercode")
	}

	report := &Report{
		Country:     country,
		Coordinates: Coordinates{Lat: lat, Lon: lon},
		Current: Current{
			Temperature: resp.CurrentWeather.Temperature,
			Weather:     Describe(*resp.CurrentWeather.WeatherCode),
			WindSpeed:   resp.CurrentWeather.WindSpeed,
		},
		Daily: []Day{},
	}
	d := resp.Daily
	n := min(len(d.Time), MaxDays)
	if len(d.TempMax) < n || len(d.TempMin) < n || len(d.Precipitation) < n || len(d.WeatherCode) < n {
		return nil, c.http.Protocol("daily series are shorter than the time axis")
	}
	for i := 0; i < n; i++ {
		if d.WeatherCode[i] == nil {
			return nil, c.http.Protocol("daily weathercode %d is missing", i)
		}
		report.Daily = append(report.Daily, Day{
			Date:              d.Time[i],
			MaxTemp:           d.TempMax[i],
			MinTemp:           d.TempMin[i],
			PrecipitationProb: d.Precipitation[i],
			Weather:           Describe(*d.WeatherCode[i]),
		})
	}
	return report, nil
}
