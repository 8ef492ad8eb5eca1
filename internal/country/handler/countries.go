package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"countries/internal/country/models"
	dErrors "countries/pkg/domain-errors"
	"countries/pkg/platform/httputil"
	"countries/pkg/requestcontext"
)

// countryName reads the {name} path parameter. chi matches on RawPath when
// the request carries one, and only then is the parameter still escaped.
func countryName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid country name")
		}
		name = unescaped
	}
	if strings.TrimSpace(name) == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "country name is required")
	}
	return name, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.ListCountries(r.Context())
	if err != nil {
		h.fail(w, r, "list countries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCountryList(countries))
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.SearchCountries(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, "search countries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCountryList(countries))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	name, err := countryName(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	details, err := h.countries.GetCountryDetails(r.Context(), name)
	if err != nil {
		h.fail(w, r, "get country", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, err := countryName(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var update models.CountryUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.logger.WarnContext(ctx, "invalid update request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.countries.UpdateCountry(ctx, name, update)
	if err != nil {
		h.fail(w, r, "update country", err)
		return
	}
	h.metrics.IncrementCountryUpdates()
	h.logger.InfoContext(ctx, "country updated",
		"country", updated.Name,
		"subject", requestcontext.Subject(ctx),
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	name, err := countryName(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteError(w, h.countries.DeleteCountry(r.Context(), name))
}

// fail logs at a level matching the error class and writes the envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	attrs := []any{"op", op, "request_id", requestcontext.RequestID(ctx), "error", err}
	if de, ok := dErrors.As(err); ok && dErrors.ToHTTPStatus(de.Code) < http.StatusInternalServerError {
		h.logger.InfoContext(ctx, "request rejected", attrs...)
	} else {
		h.logger.ErrorContext(ctx, "request failed", attrs...)
	}
	httputil.WriteError(w, err)
}
