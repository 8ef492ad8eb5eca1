package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"countries/internal/country/handler"
	"countries/pkg/platform/httputil"
)

const welcomeMessage = "Welcome to the Saneles Country API!"

// healthTimeout bounds each dependency ping.
const healthTimeout = 2 * time.Second

// Pinger is a dependency the health check reaches.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Welcome is the body of GET /.
type Welcome struct {
	Message string          `json:"message"`
	Routes  []handler.Route `json:"routes"`
}

// NewRouter wires the country routes plus the service endpoints: the route
// listing at /, /healthz and /metrics. metricsHandler may be nil.
func NewRouter(countries *handler.Handler, checks map[string]Pinger, metricsHandler http.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	service := []handler.Route{
		{Path: "/", Methods: []string{http.MethodGet}, Name: "root"},
		{Path: "/healthz", Methods: []string{http.MethodGet}, Name: "health"},
	}
	if metricsHandler != nil {
		service = append(service, handler.Route{Path: "/metrics", Methods: []string{http.MethodGet}, Name: "metrics"})
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	routes := append(service, countries.Routes()...)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, Welcome{Message: welcomeMessage, Routes: routes})
	})
	r.Get("/healthz", healthHandler(checks, logger))
	countries.Register(r)
	return r
}

func healthHandler(checks map[string]Pinger, logger *slog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		result := map[string]string{}
		for _, name := range names {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			err := checks[name].Ping(ctx)
			cancel()
			if err != nil {
				logger.WarnContext(r.Context(), "health check failed", "dependency", name, "error", err)
				result[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}
		body := map[string]any{"status": "ok", "checks": result}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
