package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"countries/internal/country/models"
	"countries/internal/country/service"
	"countries/internal/platform/metrics"
	"countries/internal/platform/middleware"
	"countries/internal/providers/attractions"
	"countries/internal/providers/chat"
	"countries/internal/providers/currency"
	"countries/internal/providers/mapdata"
	"countries/internal/providers/photos"
	"countries/internal/providers/safety"
	"countries/internal/providers/social"
	"countries/internal/providers/weather"
)

// Service is the record and aggregation layer.
type Service interface {
	ListCountries(ctx context.Context) ([]*models.Country, error)
	SearchCountries(ctx context.Context, query string) ([]*models.Country, error)
	GetCountryDetails(ctx context.Context, name string) (*models.CountryDetails, error)
	UpdateCountry(ctx context.Context, name string, update models.CountryUpdate) (*models.Country, error)
	DeleteCountry(ctx context.Context, name string) error
	GetCountryImages(ctx context.Context, name string) (*service.Images, error)
}

type WeatherProvider interface {
	Forecast(ctx context.Context, country string) (*weather.Report, error)
}

type CurrencyConverter interface {
	Convert(ctx context.Context, country string, amount float64, fromCurrency string) (*currency.Conversion, error)
}

type SafetyProvider interface {
	Advisory(ctx context.Context, country string) (*safety.Result, error)
}

type SocialProvider interface {
	Posts(ctx context.Context, country string) (*social.Result, error)
}

type AttractionsProvider interface {
	Attractions(ctx context.Context, country string) (*attractions.Result, error)
}

type MapProvider interface {
	Map(ctx context.Context, country string) (*mapdata.Result, error)
}

type ChatProvider interface {
	Ask(ctx context.Context, country, message string) (*chat.Reply, error)
}

// Providers holds the upstream adapters behind the enrichment routes. A nil
// field means the provider is not configured and its route answers 503.
type Providers struct {
	Weather     WeatherProvider
	Currency    CurrencyConverter
	Safety      SafetyProvider
	Social      SocialProvider
	Attractions AttractionsProvider
	Unsplash    photos.Source
	Pixabay     photos.Source
	Pexels      photos.Source
	Map         MapProvider
	Chat        ChatProvider
}

// Handler serves the /countries routes.
type Handler struct {
	logger         *slog.Logger
	countries      Service
	providers      Providers
	metrics        *metrics.Metrics
	jwtValidator   middleware.JWTValidator
	requestTimeout time.Duration
}

// New creates a country Handler. jwtValidator may be nil, in which case the
// update routes are open.
func New(
	countries Service,
	providers Providers,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	requestTimeout time.Duration) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		countries:      countries,
		providers:      providers,
		metrics:        metrics,
		jwtValidator:   jwtValidator,
		requestTimeout: requestTimeout,
	}
}

// Route describes one registered endpoint for the root listing.
type Route struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
	Name    string   `json:"name"`
}

type endpoint struct {
	method  string
	path    string
	name    string
	guarded bool
	fn      http.HandlerFunc
}

func (h *Handler) endpoints() []endpoint {
	return []endpoint{
		{method: http.MethodGet, path: "/countries", name: "list_countries", fn: h.handleList},
		{method: http.MethodGet, path: "/countries/search", name: "search_countries", fn: h.handleSearch},
		{method: http.MethodGet, path: "/countries/{name}", name: "get_country", fn: h.handleGet},
		{method: http.MethodPut, path: "/countries/{name}", name: "update_country", guarded: true, fn: h.handleUpdate},
		{method: http.MethodPatch, path: "/countries/{name}", name: "update_country", guarded: true, fn: h.handleUpdate},
		{method: http.MethodDelete, path: "/countries/{name}", name: "delete_country", fn: h.handleDelete},
		{method: http.MethodGet, path: "/countries/{name}/weather", name: "get_country_weather", fn: h.handleWeather},
		{method: http.MethodGet, path: "/countries/{name}/currency/convert", name: "convert_currency", fn: h.handleCurrency},
		{method: http.MethodGet, path: "/countries/{name}/safety", name: "get_country_safety", fn: h.handleSafety},
		{method: http.MethodGet, path: "/countries/{name}/social", name: "get_country_social", fn: h.handleSocial},
		{method: http.MethodGet, path: "/countries/{name}/attractions", name: "get_country_attractions", fn: h.handleAttractions},
		{method: http.MethodGet, path: "/countries/{name}/photos", name: "get_country_photos", fn: h.photoRoute(func() photos.Source { return h.providers.Unsplash })},
		{method: http.MethodGet, path: "/countries/{name}/pixabay_photos", name: "get_country_pixabay_photos", fn: h.photoRoute(func() photos.Source { return h.providers.Pixabay })},
		{method: http.MethodGet, path: "/countries/{name}/pexels_photos", name: "get_country_pexels_photos", fn: h.photoRoute(func() photos.Source { return h.providers.Pexels })},
		{method: http.MethodGet, path: "/countries/{name}/images", name: "get_country_images", fn: h.handleImages},
		{method: http.MethodGet, path: "/countries/{name}/map", name: "get_country_map", fn: h.handleMap},
		{method: http.MethodPost, path: "/countries/{name}/chat", name: "chat_about_country", fn: h.handleChat},
	}
}

// Register registers the country routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(countryRouter chi.Router) {
		countryRouter.Use(middleware.Recovery(h.logger))
		countryRouter.Use(middleware.RequestID)
		countryRouter.Use(middleware.Logger(h.logger))
		countryRouter.Use(middleware.Timeout(h.requestTimeout))
		countryRouter.Use(middleware.ContentTypeJSON)
		countryRouter.Use(middleware.LatencyMiddleware(h.metrics))

		auth := middleware.RequireAuth(h.jwtValidator, h.logger)
		for _, ep := range h.endpoints() {
			var fn http.Handler = ep.fn
			if ep.guarded {
				fn = auth(fn)
			}
			countryRouter.Method(ep.method, ep.path, fn)
		}
	})
}

// Routes lists the registered endpoints grouped by path, in registration order.
func (h *Handler) Routes() []Route {
	var routes []Route
	index := map[string]int{}
	for _, ep := range h.endpoints() {
		if i, ok := index[ep.path]; ok {
			routes[i].Methods = append(routes[i].Methods, ep.method)
			continue
		}
		index[ep.path] = len(routes)
		routes = append(routes, Route{Path: ep.path, Methods: []string{ep.method}, Name: ep.name})
	}
	return routes
}
