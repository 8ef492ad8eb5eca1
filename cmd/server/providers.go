package main

import (
	"log/slog"

	"countries/internal/country/handler"
	"countries/internal/platform/config"
	"countries/internal/providers"
	"countries/internal/providers/attractions"
	"countries/internal/providers/chat"
	"countries/internal/providers/currency"
	"countries/internal/providers/encyclopedia"
	"countries/internal/providers/geocode"
	"countries/internal/providers/mapdata"
	"countries/internal/providers/photos"
	"countries/internal/providers/safety"
	"countries/internal/providers/social"
	"countries/internal/providers/weather"
	"countries/internal/ratelimit/quota"
	"countries/internal/storage"
)

type providerSet struct {
	geocoder     *geocode.Client
	encyclopedia *encyclopedia.Client
	handler      handler.Providers
}

func endpoint(ep config.Endpoint, userAgent string) providers.Config {
	return providers.Config{BaseURL: ep.URL, APIKey: ep.Key, Timeout: ep.Timeout, UserAgent: userAgent}
}

// buildProviders constructs every adapter whose settings are present.
// Missing credentials disable the adapter and its route answers 503.
func buildProviders(cfg config.Providers, records storage.Store, limiter quota.Limiter, m *providers.Metrics, log *slog.Logger) providerSet {
	opts := []providers.ClientOption{providers.WithMetrics(m), providers.WithLogger(log)}
	ep := func(e config.Endpoint) providers.Config { return endpoint(e, cfg.UserAgent) }
	disabled := func(name string, err error) {
		log.Info("provider disabled", "provider", name, "reason", err)
	}

	var set providerSet
	if g, err := geocode.New(ep(cfg.Nominatim), opts...); err == nil {
		set.geocoder = g
	} else {
		disabled(geocode.ProviderID, err)
	}
	if e, err := encyclopedia.New(ep(cfg.Wikipedia), opts...); err == nil {
		set.encyclopedia = e
	} else {
		disabled(encyclopedia.ProviderID, err)
	}

	p := &set.handler
	if set.geocoder != nil {
		if w, err := weather.New(ep(cfg.OpenMeteo), set.geocoder, opts...); err == nil {
			p.Weather = w
		} else {
			disabled(weather.ProviderID, err)
		}

		var boundaries *mapdata.Boundaries
		if cfg.BoundariesFile != "" {
			b, err := mapdata.LoadBoundariesFile(cfg.BoundariesFile)
			if err != nil {
				log.Warn("map boundaries not loaded", "path", cfg.BoundariesFile, "error", err)
			} else {
				boundaries = b
				log.Info("map boundaries loaded", "features", b.Len())
			}
		}
		mapCfg := mapdata.Config{
			Mapillary:  ep(cfg.Mapillary),
			Overpass:   ep(cfg.Overpass),
			Boundaries: boundaries,
		}
		if mc, err := mapdata.New(mapCfg, set.geocoder, records, log, opts...); err == nil {
			p.Map = mc
		} else {
			disabled("map", err)
		}
	}
	if c, err := currency.New(ep(cfg.ExchangeRate), opts...); err == nil {
		p.Currency = c
	} else {
		disabled(currency.ProviderID, err)
	}
	if s, err := safety.New(ep(cfg.TravelAdvisory), opts...); err == nil {
		p.Safety = s
	} else {
		disabled(safety.ProviderID, err)
	}
	if s, err := social.New(ep(cfg.X), limiter, opts); err == nil {
		p.Social = s
	} else {
		disabled(social.ProviderID, err)
	}
	if a, err := attractions.New(ep(cfg.OpenTripMap), opts); err == nil {
		p.Attractions = a
	} else {
		disabled(attractions.ProviderID, err)
	}
	if u, err := photos.NewUnsplash(ep(cfg.Unsplash), opts...); err == nil {
		p.Unsplash = u
	} else {
		disabled("unsplash", err)
	}
	if px, err := photos.NewPixabay(ep(cfg.Pixabay), opts...); err == nil {
		p.Pixabay = px
	} else {
		disabled("pixabay", err)
	}
	if pe, err := photos.NewPexels(ep(cfg.Pexels), opts...); err == nil {
		p.Pexels = pe
	} else {
		disabled("pexels", err)
	}
	if c, err := chat.New(ep(cfg.HuggingFace), opts...); err == nil {
		p.Chat = c
	} else {
		disabled(chat.ProviderID, err)
	}
	return set
}
