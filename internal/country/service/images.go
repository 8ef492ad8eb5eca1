package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"countries/internal/providers/photos"
	pkgstrings "countries/pkg/platform/strings"
)

// MaxImages caps the merged photo list.
const MaxImages = 15

// Images is the merged result of every configured photo provider.
// TotalResults counts unique photos before the cap.
type Images struct {
	Photos       []photos.Photo `json:"photos"`
	TotalResults int            `json:"total_results"`
}

// GetCountryImages queries every photo provider in parallel. A provider
// failure leaves its slot empty; the merge keeps provider order, drops
// repeated URLs and caps the result at MaxImages.
func (s *Service) GetCountryImages(ctx context.Context, name string) (*Images, error) {
	ctx, span := s.tracer.Start(ctx, "country.images", trace.WithAttributes(
		attribute.String("country", name),
		attribute.Int("photo.sources", len(s.photoSources)),
	))
	defer span.End()

	pages := make([][]photos.Photo, len(s.photoSources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.photoSources {
		g.Go(func() error {
			page, err := src.Search(gctx, name)
			if err != nil {
				s.logger.WarnContext(gctx, "photo provider failed",
					"provider", src.Name(),
					"country", name,
					"error", err,
				)
				return nil
			}
			pages[i] = page.Photos
			return nil
		})
	}
	_ = g.Wait()

	var merged []photos.Photo
	for _, p := range pages {
		merged = append(merged, p...)
	}
	merged = pkgstrings.DedupeBy(merged, func(p photos.Photo) string { return p.URL })

	total := len(merged)
	if len(merged) > MaxImages {
		merged = merged[:MaxImages]
	}
	if merged == nil {
		merged = []photos.Photo{}
	}
	return &Images{Photos: merged, TotalResults: total}, nil
}
