package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/country/handler"
	"countries/internal/country/service"
	"countries/internal/country/store"
	"countries/pkg/testutil"
)

func newTestRouter(t *testing.T, checks map[string]Pinger) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(store.NewInMemory())
	require.NoError(t, err)
	h := handler.New(svc, handler.Providers{}, logger, nil, nil, 0)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	return NewRouter(h, checks, metrics, logger)
}

func TestRootListsRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	welcome := testutil.UnmarshalResponse[Welcome](t, rr)
	assert.Equal(t, "Welcome to the Saneles Country API!", welcome.Message)

	paths := map[string]bool{}
	for _, route := range welcome.Routes {
		paths[route.Path] = true
	}
	for _, p := range []string{"/", "/healthz", "/metrics", "/countries", "/countries/{name}/map"} {
		assert.True(t, paths[p], "missing %s", p)
	}
}

func TestHealthz(t *testing.T) {
	testutil.Given(t, "every dependency answers", func(t *testing.T) {
		r := newTestRouter(t, map[string]Pinger{
			"store": PingFunc(func(context.Context) error { return nil }),
		})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.Then(t, "the service is ok", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusOK)
		})
	})

	testutil.Given(t, "the store is down", func(t *testing.T) {
		r := newTestRouter(t, map[string]Pinger{
			"store": PingFunc(func(context.Context) error { return errors.New("no reachable servers") }),
			"redis": PingFunc(func(context.Context) error { return nil }),
		})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.Then(t, "the service is degraded", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
			body := testutil.DecodeJSONBody(t, rr)
			assert.Equal(t, "degraded", body["status"])
			checks := body["checks"].(map[string]any)
			assert.Equal(t, "unavailable", checks["store"])
			assert.Equal(t, "ok", checks["redis"])
		})
	})
}

func TestCountryRoutesMounted(t *testing.T) {
	r := newTestRouter(t, nil)
	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/countries"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{"countries":[]}`, rr.Body.String())

	rr = testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatus(t, rr, http.StatusOK)
}
