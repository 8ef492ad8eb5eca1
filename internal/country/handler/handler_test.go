package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"countries/internal/country/handler/mocks"
	"countries/internal/country/models"
	"countries/internal/country/service"
	"countries/internal/platform/middleware"
	"countries/internal/providers"
	"countries/internal/providers/chat"
	"countries/internal/providers/currency"
	"countries/internal/providers/photos"
	"countries/internal/providers/social"
	dErrors "countries/pkg/domain-errors"
	"countries/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

type stubSource struct {
	page *photos.Page
	err  error
}

func (stubSource) Name() string { return "Stub" }

func (s stubSource) Search(context.Context, string) (*photos.Page, error) { return s.page, s.err }

type rejectAll struct{}

func (rejectAll) ValidateToken(string) (*middleware.JWTClaims, error) {
	return nil, errors.New("bad token")
}

type acceptAll struct{}

func (acceptAll) ValidateToken(string) (*middleware.JWTClaims, error) {
	return &middleware.JWTClaims{Subject: "editor", Expires: time.Now().Add(time.Hour)}, nil
}

type CountryHandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	service  *mocks.MockService
	weather  *mocks.MockWeatherProvider
	currency *mocks.MockCurrencyConverter
	social   *mocks.MockSocialProvider
	chat     *mocks.MockChatProvider
}

func TestCountryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CountryHandlerSuite))
}

func (s *CountryHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.weather = mocks.NewMockWeatherProvider(s.ctrl)
	s.currency = mocks.NewMockCurrencyConverter(s.ctrl)
	s.social = mocks.NewMockSocialProvider(s.ctrl)
	s.chat = mocks.NewMockChatProvider(s.ctrl)
}

func (s *CountryHandlerSuite) router(p Providers, validator middleware.JWTValidator) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, p, logger, nil, validator, time.Second)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (s *CountryHandlerSuite) allProviders() Providers {
	return Providers{Weather: s.weather, Currency: s.currency, Social: s.social, Chat: s.chat}
}

func (s *CountryHandlerSuite) do(h http.Handler, req *http.Request) map[string]any {
	rr := testutil.DoRequest(h, req)
	s.T().Logf("%s %s -> %d %s", req.Method, req.URL, rr.Code, rr.Body.String())
	body := testutil.DecodeJSONBody(s.T(), rr)
	body["_status"] = rr.Code
	return body
}

func (s *CountryHandlerSuite) TestList() {
	h := s.router(Providers{}, nil)

	s.Run("wraps records", func() {
		pop := int64(1_400_000)
		s.service.EXPECT().ListCountries(gomock.Any()).Return([]*models.Country{
			{Name: "Eswatini", Population: &pop, Extra: map[string]any{"iso": "SZ"}},
		}, nil)
		body := s.do(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries"))
		s.Equal(http.StatusOK, body["_status"])
		list := body["countries"].([]any)
		s.Require().Len(list, 1)
		first := list[0].(map[string]any)
		s.Equal("Eswatini", first["name"])
		s.Equal("SZ", first["iso"])
	})

	s.Run("empty is an empty array", func() {
		s.service.EXPECT().ListCountries(gomock.Any()).Return(nil, nil)
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries"))
		s.JSONEq(`{"countries":[]}`, rr.Body.String())
	})

	s.Run("backend unavailable", func() {
		s.service.EXPECT().ListCountries(gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeBackendUnavailable, "record store unavailable"))
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "backend_unavailable")
	})
}

func (s *CountryHandlerSuite) TestSearch() {
	h := s.router(Providers{}, nil)

	s.service.EXPECT().SearchCountries(gomock.Any(), "sou").
		Return([]*models.Country{{Name: "South Africa"}, {Name: "South Sudan"}}, nil)
	body := s.do(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/search?q=sou"))
	s.Len(body["countries"], 2)

	s.service.EXPECT().SearchCountries(gomock.Any(), "").
		Return(nil, dErrors.New(dErrors.CodeBadRequest, "query must not be empty"))
	rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/search"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *CountryHandlerSuite) TestGet() {
	h := s.router(Providers{}, nil)

	s.Run("details with null enrichments", func() {
		s.service.EXPECT().GetCountryDetails(gomock.Any(), "South Africa").
			Return(&models.CountryDetails{Country: &models.Country{Name: "South Africa", Capital: "Pretoria"}}, nil)
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/South%20Africa"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`{"name":"South Africa","capital":"Pretoria","coordinates":null,"wikipedia_summary":null}`, rr.Body.String())
	})

	s.Run("literal percent is decoded once", func() {
		s.service.EXPECT().GetCountryDetails(gomock.Any(), "100% Land").
			Return(&models.CountryDetails{Country: &models.Country{Name: "100% Land"}}, nil)
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/100%25%20Land"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("non-canonical escape routed on raw path", func() {
		s.service.EXPECT().GetCountryDetails(gomock.Any(), "Guinea-Bissau").
			Return(&models.CountryDetails{Country: &models.Country{Name: "Guinea-Bissau"}}, nil)
		req := testutil.NewRequest(s.T(), http.MethodGet, "/countries/Guinea%2DBissau")
		s.Require().NotEmpty(req.URL.RawPath)
		rr := testutil.DoRequest(h, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("not found", func() {
		s.service.EXPECT().GetCountryDetails(gomock.Any(), "Atlantis").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Country not found"))
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Atlantis"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *CountryHandlerSuite) TestUpdate() {
	s.Run("applies partial update", func() {
		h := s.router(Providers{}, nil)
		s.service.EXPECT().UpdateCountry(gomock.Any(), "Peru", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, u models.CountryUpdate) (*models.Country, error) {
				s.Require().NotNil(u.Capital)
				s.Equal("Lima", *u.Capital)
				s.Nil(u.Name)
				return &models.Country{Name: "Peru", Capital: "Lima"}, nil
			})
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/countries/Peru", map[string]any{"capital": "Lima"})
		body := s.do(h, req)
		s.Equal(http.StatusOK, body["_status"])
		s.Equal("Lima", body["capital"])
	})

	s.Run("duplicate name", func() {
		h := s.router(Providers{}, nil)
		s.service.EXPECT().UpdateCountry(gomock.Any(), "Kenya", gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeDuplicateName, "A country with this name already exists"))
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/countries/Kenya", map[string]any{"name": "Peru"})
		rr := testutil.DoRequest(h, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "duplicate_name")
	})

	s.Run("malformed body never reaches the service", func() {
		h := s.router(Providers{}, nil)
		req := testutil.NewRequest(s.T(), http.MethodPut, "/countries/Peru")
		req.Body = io.NopCloser(strings.NewReader(`{"capital":`))
		rr := testutil.DoRequest(h, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("bearer token required when configured", func() {
		h := s.router(Providers{}, rejectAll{})
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/countries/Peru", map[string]any{"capital": "Lima"})
		rr := testutil.DoRequest(h, testutil.WithBearer(req, "nope"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("valid bearer token", func() {
		h := s.router(Providers{}, acceptAll{})
		s.service.EXPECT().UpdateCountry(gomock.Any(), "Peru", gomock.Any()).
			Return(&models.Country{Name: "Peru"}, nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/countries/Peru", map[string]any{"region": "Americas"})
		rr := testutil.DoRequest(h, testutil.WithBearer(req, "fine"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("reads stay open when auth is configured", func() {
		h := s.router(Providers{}, rejectAll{})
		s.service.EXPECT().ListCountries(gomock.Any()).Return(nil, nil)
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})
}

func (s *CountryHandlerSuite) TestDelete() {
	h := s.router(Providers{}, nil)
	s.service.EXPECT().DeleteCountry(gomock.Any(), "Peru").
		Return(dErrors.New(dErrors.CodeMethodNotAllowed, "Deleting countries is not allowed."))
	rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodDelete, "/countries/Peru"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusMethodNotAllowed, "method_not_allowed")
}

func (s *CountryHandlerSuite) TestProviderNotConfigured() {
	h := s.router(Providers{}, nil)
	for _, path := range []string{
		"/countries/Peru/weather",
		"/countries/Peru/safety",
		"/countries/Peru/social",
		"/countries/Peru/attractions",
		"/countries/Peru/photos",
		"/countries/Peru/pixabay_photos",
		"/countries/Peru/pexels_photos",
		"/countries/Peru/map",
		"/countries/Peru/currency/convert?amount=1&from_currency=USD",
	} {
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, path))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "provider_not_configured")
	}
	rr := testutil.DoRequest(h, testutil.NewJSONRequest(s.T(), http.MethodPost, "/countries/Peru/chat", ChatRequest{Message: "hi"}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "provider_not_configured")
}

func (s *CountryHandlerSuite) TestProviderErrors() {
	h := s.router(s.allProviders(), nil)
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unreachable", providers.NewProviderError(providers.ErrorUnreachable, "open-meteo", "timeout", nil), http.StatusBadGateway, "upstream_unreachable"},
		{"upstream status", providers.NewUpstreamError("open-meteo", http.StatusInternalServerError, "oops"), http.StatusBadGateway, "upstream_error"},
		{"protocol", providers.NewProviderError(providers.ErrorProtocol, "open-meteo", "bad json", nil), http.StatusBadGateway, "upstream_protocol_error"},
		{"not found", providers.NewProviderError(providers.ErrorNotFound, "nominatim", "no place", nil), http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.weather.EXPECT().Forecast(gomock.Any(), "Peru").Return(nil, tt.err)
			rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Peru/weather"))
			testutil.AssertStatusAndError(s.T(), rr, tt.status, tt.code)
		})
	}
}

func (s *CountryHandlerSuite) TestSocialQuota() {
	h := s.router(s.allProviders(), nil)
	s.social.EXPECT().Posts(gomock.Any(), "Peru").
		Return(nil, providers.NewProviderError(providers.ErrorQuotaExceeded, social.ProviderID, "daily quota spent", nil))
	rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Peru/social"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "quota_exceeded")
}

func (s *CountryHandlerSuite) TestCurrency() {
	h := s.router(s.allProviders(), nil)

	s.Run("converts", func() {
		s.currency.EXPECT().Convert(gomock.Any(), "South Africa", 100.0, "usd").
			Return(&currency.Conversion{Country: "South Africa", From: "100.00 USD", To: "1850.00 ZAR", ExchangeRate: 18.5}, nil)
		body := s.do(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/South%20Africa/currency/convert?amount=100&from_currency=usd"))
		s.Equal("1850.00 ZAR", body["to"])
	})

	s.Run("missing amount", func() {
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Peru/currency/convert?from_currency=USD"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("non numeric amount", func() {
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Peru/currency/convert?amount=ten&from_currency=USD"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("adapter rejects non positive amount", func() {
		s.currency.EXPECT().Convert(gomock.Any(), "Peru", -5.0, "USD").
			Return(nil, providers.NewProviderError(providers.ErrorInvalidInput, "exchangerate-api", "amount must be greater than 0", nil))
		rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Peru/currency/convert?amount=-5&from_currency=USD"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *CountryHandlerSuite) TestPhotosAndImages() {
	page := &photos.Page{Photos: []photos.Photo{{URL: "https://img/1", Source: "Pixabay"}}, TotalResults: 40}
	h := s.router(Providers{Pixabay: stubSource{page: page}}, nil)

	body := s.do(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Peru/pixabay_photos"))
	s.EqualValues(40, body["total_results"])

	s.service.EXPECT().GetCountryImages(gomock.Any(), "Peru").
		Return(&service.Images{Photos: page.Photos, TotalResults: 1}, nil)
	body = s.do(h, testutil.NewRequest(s.T(), http.MethodGet, "/countries/Peru/images"))
	s.EqualValues(1, body["total_results"])
	s.Len(body["photos"], 1)
}

func (s *CountryHandlerSuite) TestChat() {
	h := s.router(s.allProviders(), nil)

	s.chat.EXPECT().Ask(gomock.Any(), "Japan", "When is cherry blossom season?").
		Return(&chat.Reply{Reply: "Late March to early April."}, nil)
	body := s.do(h, testutil.NewJSONRequest(s.T(), http.MethodPost, "/countries/Japan/chat",
		ChatRequest{Message: "When is cherry blossom season?"}))
	s.Equal("Late March to early April.", body["reply"])

	rr := testutil.DoRequest(h, testutil.NewRequest(s.T(), http.MethodPost, "/countries/Japan/chat"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *CountryHandlerSuite) TestRoutes() {
	h := New(s.service, Providers{}, nil, nil, nil, 0)
	routes := h.Routes()

	byPath := map[string]Route{}
	for _, r := range routes {
		byPath[r.Path] = r
	}
	s.Equal([]string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete}, byPath["/countries/{name}"].Methods)
	s.Equal([]string{http.MethodPost}, byPath["/countries/{name}/chat"].Methods)
	s.Equal("list_countries", routes[0].Name)
}
