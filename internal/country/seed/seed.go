// Package seed imports country records from JSON or YAML exports.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"countries/internal/country/models"
	"countries/pkg/platform/sentinel"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from a file extension; JSON is the default.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// storage identity keys that exports may carry
var dropped = []string{"_id", "name_ci"}

// Decode reads a list of records. Identity keys from a database export are
// discarded; everything else is kept as record attributes.
func Decode(r io.Reader, format Format) ([]*models.Country, error) {
	var docs []map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&docs); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&docs); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}

	countries := make([]*models.Country, 0, len(docs))
	for i, doc := range docs {
		for _, k := range dropped {
			delete(doc, k)
		}
		c, err := models.FromMap(doc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		countries = append(countries, c)
	}
	return countries, nil
}

type Inserter interface {
	Insert(ctx context.Context, country *models.Country) error
}

// Result counts what an import did.
type Result struct {
	Inserted int
	Skipped  []string
}

// Insert writes every record. With skipExisting, records whose normalized
// name is taken are reported in Skipped; otherwise the first conflict stops
// the import.
func Insert(ctx context.Context, dst Inserter, countries []*models.Country, skipExisting bool) (Result, error) {
	var res Result
	for _, c := range countries {
		err := dst.Insert(ctx, c)
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, sentinel.ErrConflict) && skipExisting:
			res.Skipped = append(res.Skipped, c.Name)
		default:
			return res, fmt.Errorf("insert %q: %w", c.Name, err)
		}
	}
	return res, nil
}
