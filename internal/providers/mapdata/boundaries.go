package mapdata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"countries/internal/country/models"
)

// Boundaries indexes a Natural Earth admin-0 FeatureCollection by the
// normalized NAME property. It is built once and read only afterwards.
type Boundaries struct {
	byName map[string]json.RawMessage
}

type featureCollection struct {
	Features []json.RawMessage `json:"features"`
}

type featureProps struct {
	Properties struct {
		Name string `json:"NAME"`
	} `json:"properties"`
}

// LoadBoundaries parses a FeatureCollection. Features without a NAME are skipped.
func LoadBoundaries(r io.Reader) (*Boundaries, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode boundaries: %w", err)
	}
	b := &Boundaries{byName: make(map[string]json.RawMessage, len(fc.Features))}
	for _, raw := range fc.Features {
		var f featureProps
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode boundary feature: %w", err)
		}
		key := models.NormalizeName(f.Properties.Name)
		if key == "" {
			continue
		}
		if _, dup := b.byName[key]; !dup {
			b.byName[key] = raw
		}
	}
	return b, nil
}

// LoadBoundariesFile reads a FeatureCollection from path.
func LoadBoundariesFile(path string) (*Boundaries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadBoundaries(f)
}

// Lookup returns the feature whose NAME matches country, ignoring case and
// surrounding whitespace. A nil *Boundaries has no features.
func (b *Boundaries) Lookup(country string) (json.RawMessage, bool) {
	if b == nil {
		return nil, false
	}
	f, ok := b.byName[models.NormalizeName(country)]
	return f, ok
}

// Len reports how many features are indexed.
func (b *Boundaries) Len() int {
	if b == nil {
		return 0
	}
	return len(b.byName)
}
