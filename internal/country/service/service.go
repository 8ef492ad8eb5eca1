package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"countries/internal/country/models"
	"countries/internal/events"
	"countries/internal/providers/photos"
	dErrors "countries/pkg/domain-errors"
	"countries/pkg/platform/sentinel"
)

const tracerName = "countries/internal/country/service"

// DefaultPublishTimeout bounds how long an update waits on the event publisher.
const DefaultPublishTimeout = 2 * time.Second

// Store is the record store as the service sees it.
type Store interface {
	FindAll(ctx context.Context) ([]*models.Country, error)
	SearchByPrefix(ctx context.Context, query string, limit int) ([]*models.Country, error)
	FindByName(ctx context.Context, name string) (*models.Country, error)
	UpdateFields(ctx context.Context, name string, update models.CountryUpdate) (*models.Country, error)
}

// Geocoder supplies the bounding box shown on the details view.
type Geocoder interface {
	BoundingBox(ctx context.Context, country string) ([]string, error)
}

// Encyclopedia supplies the summary shown on the details view.
type Encyclopedia interface {
	Summary(ctx context.Context, title string) (string, error)
}

// Service reads and updates country records and composes the views that
// combine a record with upstream data.
type Service struct {
	store        Store
	geocoder     Geocoder
	encyclopedia Encyclopedia
	photoSources []photos.Source
	publisher    events.Publisher
	publishWait  time.Duration
	logger       *slog.Logger
	tracer       trace.Tracer
}

type Option func(*Service)

func WithGeocoder(g Geocoder) Option {
	return func(s *Service) { s.geocoder = g }
}

func WithEncyclopedia(e Encyclopedia) Option {
	return func(s *Service) { s.encyclopedia = e }
}

// WithPhotoSources sets the merged-image providers. Their order is the merge
// order; nil entries are skipped.
func WithPhotoSources(sources ...photos.Source) Option {
	return func(s *Service) {
		s.photoSources = s.photoSources[:0]
		for _, src := range sources {
			if src != nil {
				s.photoSources = append(s.photoSources, src)
			}
		}
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithPublishTimeout overrides DefaultPublishTimeout. Non-positive values are ignored.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishWait = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("country store is required")
	}
	s := &Service{
		store:       store,
		publisher:   events.Nop{},
		publishWait: DefaultPublishTimeout,
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListCountries returns every record ordered by normalized name.
func (s *Service) ListCountries(ctx context.Context) ([]*models.Country, error) {
	countries, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return countries, nil
}

// SearchCountries returns records whose normalized name starts with query.
func (s *Service) SearchCountries(ctx context.Context, query string) ([]*models.Country, error) {
	if strings.TrimSpace(query) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "query must not be empty")
	}
	countries, err := s.store.SearchByPrefix(ctx, query, 0)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return countries, nil
}

// GetCountryDetails returns the record with its bounding box and summary.
// Either enrichment may be absent; only a missing record is an error.
func (s *Service) GetCountryDetails(ctx context.Context, name string) (*models.CountryDetails, error) {
	ctx, span := s.tracer.Start(ctx, "country.details", trace.WithAttributes(attribute.String("country", name)))
	defer span.End()

	country, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, translateStoreError(err)
	}
	details := &models.CountryDetails{Country: country}

	if s.geocoder != nil {
		box, err := s.geocoder.BoundingBox(ctx, country.Name)
		if err != nil {
			s.logger.WarnContext(ctx, "geocoding failed", "country", country.Name, "error", err)
		} else {
			details.Coordinates = &models.Coordinates{BoundingBox: box}
		}
	}

	if s.encyclopedia != nil {
		summary, err := s.encyclopedia.Summary(ctx, country.Name)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "summary lookup failed", "country", country.Name, "error", err)
		case summary != "":
			details.WikipediaSummary = &summary
		}
	}
	return details, nil
}

// UpdateCountry applies a partial update and announces it.
func (s *Service) UpdateCountry(ctx context.Context, name string, update models.CountryUpdate) (*models.Country, error) {
	update.Normalize()
	if err := update.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateFields(ctx, name, update)
	if err != nil {
		return nil, translateStoreError(err)
	}

	evt := events.NewCountryUpdated(updated.Name, name, fieldNames(update))
	pubCtx, cancel := context.WithTimeout(ctx, s.publishWait)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, evt); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish update event",
			"country", updated.Name,
			"event_id", evt.ID,
			"error", err,
		)
	}
	return updated, nil
}

// DeleteCountry always refuses. Records are only removed out of band.
func (s *Service) DeleteCountry(_ context.Context, _ string) error {
	return dErrors.New(dErrors.CodeMethodNotAllowed, "Deleting countries is not allowed.")
}

func fieldNames(u models.CountryUpdate) []string {
	fields := u.Fields()
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

func translateStoreError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "Country not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeDuplicateName, "A country with this name already exists")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeBackendUnavailable, "record store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "record store error")
	}
}
