package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"countries/internal/providers"
	"countries/internal/providers/photos"
	"countries/internal/providers/social"
	dErrors "countries/pkg/domain-errors"
	"countries/pkg/platform/httputil"
)

// provide runs one provider call for the {name} route and writes its result.
// A nil provider answers 503 without calling anything.
func provide(h *Handler, w http.ResponseWriter, r *http.Request, op string, configured bool, call func(ctx context.Context, name string) (any, error)) {
	if !configured {
		httputil.WriteError(w, dErrors.New(dErrors.CodeProviderNotConfigured, op+" provider is not configured"))
		return
	}
	name, err := countryName(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := call(r.Context(), name)
	if err != nil {
		h.fail(w, r, op, providers.ToDomainError(err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleWeather(w http.ResponseWriter, r *http.Request) {
	p := h.providers.Weather
	provide(h, w, r, "weather", p != nil, func(ctx context.Context, name string) (any, error) {
		return p.Forecast(ctx, name)
	})
}

func (h *Handler) handleCurrency(w http.ResponseWriter, r *http.Request) {
	p := h.providers.Currency
	q := r.URL.Query()
	rawAmount := strings.TrimSpace(q.Get("amount"))
	if rawAmount == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "amount is required"))
		return
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "amount must be a number"))
		return
	}
	from := q.Get("from_currency")
	provide(h, w, r, "currency", p != nil, func(ctx context.Context, name string) (any, error) {
		return p.Convert(ctx, name, amount, from)
	})
}

func (h *Handler) handleSafety(w http.ResponseWriter, r *http.Request) {
	p := h.providers.Safety
	provide(h, w, r, "safety", p != nil, func(ctx context.Context, name string) (any, error) {
		return p.Advisory(ctx, name)
	})
}

func (h *Handler) handleSocial(w http.ResponseWriter, r *http.Request) {
	p := h.providers.Social
	provide(h, w, r, "social", p != nil, func(ctx context.Context, name string) (any, error) {
		res, err := p.Posts(ctx, name)
		if providers.GetCategory(err) == providers.ErrorQuotaExceeded {
			h.metrics.IncrementQuotaRejections(social.ProviderID)
		}
		return res, err
	})
}

func (h *Handler) handleAttractions(w http.ResponseWriter, r *http.Request) {
	p := h.providers.Attractions
	provide(h, w, r, "attractions", p != nil, func(ctx context.Context, name string) (any, error) {
		return p.Attractions(ctx, name)
	})
}

func (h *Handler) photoRoute(source func() photos.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		src := source()
		provide(h, w, r, "photos", src != nil, func(ctx context.Context, name string) (any, error) {
			return src.Search(ctx, name)
		})
	}
}

func (h *Handler) handleImages(w http.ResponseWriter, r *http.Request) {
	provide(h, w, r, "images", true, func(ctx context.Context, name string) (any, error) {
		return h.countries.GetCountryImages(ctx, name)
	})
}

func (h *Handler) handleMap(w http.ResponseWriter, r *http.Request) {
	p := h.providers.Map
	provide(h, w, r, "map", p != nil, func(ctx context.Context, name string) (any, error) {
		return p.Map(ctx, name)
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	p := h.providers.Chat
	if p == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeProviderNotConfigured, "chat provider is not configured"))
		return
	}
	var req ChatRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	provide(h, w, r, "chat", true, func(ctx context.Context, name string) (any, error) {
		return p.Ask(ctx, name, req.Message)
	})
}
