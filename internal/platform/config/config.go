package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// JWTSigningKey guards the update routes when set. There is no default.
	JWTSigningKey string
}

// Log selects level and handler format for slog.
type Log struct {
	Level  string
	Format string
}

// Store selects the record store backend by URL scheme:
// mongodb://, mongodb+srv://, postgres://, postgresql:// or memory://.
type Store struct {
	URL            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// Backend returns the scheme family of the store URL.
func (s Store) Backend() string {
	switch {
	case strings.HasPrefix(s.URL, "mongodb://"), strings.HasPrefix(s.URL, "mongodb+srv://"):
		return "mongodb"
	case strings.HasPrefix(s.URL, "postgres://"), strings.HasPrefix(s.URL, "postgresql://"):
		return "postgres"
	default:
		return "memory"
	}
}

// RedisConfig backs the shared social quota. Empty URL keeps the quota in process.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the country.updated event stream. Empty brokers disables it.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Endpoint is one upstream provider: where it lives and how it authenticates.
type Endpoint struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// Providers lists every upstream the API talks to.
type Providers struct {
	UserAgent          string
	Nominatim          Endpoint
	Wikipedia          Endpoint
	OpenMeteo          Endpoint
	ExchangeRate       Endpoint
	TravelAdvisory     Endpoint
	X                  Endpoint
	XMaxRequestsPerDay int
	OpenTripMap        Endpoint
	Unsplash           Endpoint
	Pixabay            Endpoint
	Pexels             Endpoint
	HuggingFace        Endpoint
	Mapillary          Endpoint
	Overpass           Endpoint
	// BoundariesFile is a Natural Earth admin-0 GeoJSON used when the
	// geocoder returns no outline. Empty disables the fallback.
	BoundariesFile     string
}

type Config struct {
	Server    Server
	Log       Log
	Store     Store
	Redis     RedisConfig
	Kafka     Kafka
	Providers Providers
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	e := &envReader{}
	providerTimeout := e.duration("PROVIDER_TIMEOUT", 10*time.Second)
	endpoint := func(urlVar, defURL, keyVar string) Endpoint {
		ep := Endpoint{URL: e.str(urlVar, defURL), Timeout: providerTimeout}
		if keyVar != "" {
			ep.Key = os.Getenv(keyVar)
		}
		return ep
	}

	cfg := Config{
		Server: Server{
			Addr:            e.str("ADDR", ":8000"),
			RequestTimeout:  e.duration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			JWTSigningKey:   os.Getenv("JWT_SIGNING_KEY"),
		},
		Log: Log{
			Level:  e.str("LOG_LEVEL", "info"),
			Format: e.str("LOG_FORMAT", "text"),
		},
		Store: Store{
			URL:            e.str("STORE_URL", "memory://"),
			Database:       e.str("MONGODB_DB", "countries_db"),
			Collection:     e.str("MONGODB_COLLECTION", "countries"),
			ConnectTimeout: e.duration("STORE_CONNECT_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 1),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   e.str("KAFKA_TOPIC", "country.updated"),
		},
		Providers: Providers{
			UserAgent:          e.str("USER_AGENT", "countries-api/1.0"),
			Nominatim:          endpoint("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search", ""),
			Wikipedia:          endpoint("WIKIPEDIA_URL", "https://en.wikipedia.org/api/rest_v1/page/summary", ""),
			OpenMeteo:          endpoint("OPEN_METEO_URL", "https://api.open-meteo.com/v1/forecast", ""),
			ExchangeRate:       endpoint("EXCHANGERATE_URL", "https://v6.exchangerate-api.com/v6", "EXCHANGERATE_API_KEY"),
			TravelAdvisory:     endpoint("TRAVEL_ADVISORY_URL", "https://travel.state.gov/_res/rss/TAs.xml", ""),
			X:                  endpoint("X_API_URL", "https://api.twitter.com/2/tweets/search/recent", "X_BEARER_TOKEN"),
			XMaxRequestsPerDay: e.integer("X_MAX_REQUESTS_PER_DAY", 4),
			OpenTripMap:        endpoint("OPENTRIPMAP_URL", "https://api.opentripmap.com/0.1/en/places", "OPENTRIPMAP_API_KEY"),
			Unsplash:           endpoint("UNSPLASH_URL", "https://api.unsplash.com", "UNSPLASH_API_KEY"),
			Pixabay:            endpoint("PIXABAY_URL", "https://pixabay.com/api/", "PIXABAY_API_KEY"),
			Pexels:             endpoint("PEXELS_URL", "https://api.pexels.com/v1/search", "PEXELS_API_KEY"),
			HuggingFace: endpoint("HUGGINGFACE_MODEL_URL",
				"https://api-inference.huggingface.co/models/mistralai/Mixtral-8x7B-Instruct-v0.1", "HUGGINGFACE_API_KEY"),
			Mapillary:      endpoint("MAPILLARY_URL", "https://graph.mapillary.com/images", "MAPILLARY_CLIENT_ID"),
			Overpass:       endpoint("OVERPASS_URL", "https://overpass-api.de/api/interpreter", ""),
			BoundariesFile: os.Getenv("MAP_BOUNDARIES_FILE"),
		},
	}
	if e.err != nil {
		return Config{}, e.err
	}
	return cfg, nil
}

// envReader collects the first parse failure so FromEnv can read every
// variable in one pass.
type envReader struct {
	err error
}

func (e *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *envReader) integer(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}

func (e *envReader) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
