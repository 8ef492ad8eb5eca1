package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	dErrors "countries/pkg/domain-errors"
	pkgstrings "countries/pkg/platform/strings"
)

// Known document keys. Anything else on a stored document is kept in Extra.
const (
	FieldName       = "name"
	FieldPopulation = "population"
	FieldCapital    = "capital"
	FieldFlag       = "flag"
	FieldRegion     = "region"
	FieldSubregion  = "subregion"
	FieldLanguages  = "languages"
)

// Country is the canonical country record.
//
// Invariants:
//   - Name is non-empty
//   - NormalizeName(Name) is unique within a store
//   - records are created out-of-band and never deleted
type Country struct {
	Name       string
	Population *int64
	Capital    string
	Flag       string
	Region     string
	Subregion  string
	Languages  string
	Extra      map[string]any
}

// NormalizeName is the store identity key: trimmed, internal whitespace
// collapsed, lower-cased. It is idempotent.
func NormalizeName(name string) string {
	return strings.ToLower(pkgstrings.CollapseSpaces(name))
}

// NewCountry validates the record invariants.
func NewCountry(name string) (*Country, error) {
	name = pkgstrings.CollapseSpaces(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "country name cannot be empty")
	}
	return &Country{Name: name}, nil
}

// Key returns the normalized identity of the record.
func (c *Country) Key() string {
	return NormalizeName(c.Name)
}

// Clone returns a deep copy. Nested maps and slices under Extra are copied
// too, so stores can hand records out without sharing mutable state.
func (c *Country) Clone() *Country {
	out := *c
	if c.Population != nil {
		p := *c.Population
		out.Population = &p
	}
	if c.Extra != nil {
		out.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = deepCopy(v)
		}
	}
	return &out
}

// deepCopy copies maps and slices recursively, keeping their concrete types
// (decoders hand back map[string]any, []any, bson.M, bson.A and friends).
// Scalars are returned as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int, int32, int64, float64, json.Number:
		return v
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	}
	return copyValue(reflect.ValueOf(v)).Interface()
}

func copyValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		return copyValue(rv.Elem())
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), assignable(copyValue(iter.Value()), rv.Type().Elem()))
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(assignable(copyValue(rv.Index(i)), rv.Type().Elem()))
		}
		return out
	default:
		return rv
	}
}

// assignable converts v back to an element type after copyValue unwrapped an
// interface.
func assignable(v reflect.Value, elem reflect.Type) reflect.Value {
	if !v.IsValid() {
		return reflect.Zero(elem)
	}
	if v.Type().AssignableTo(elem) {
		return v
	}
	return v.Convert(elem)
}

// ToMap flattens the record into a document. Empty optional fields are omitted.
func (c *Country) ToMap() map[string]any {
	m := make(map[string]any, 7+len(c.Extra))
	for k, v := range c.Extra {
		m[k] = v
	}
	m[FieldName] = c.Name
	if c.Population != nil {
		m[FieldPopulation] = *c.Population
	}
	setIfNotEmpty(m, FieldCapital, c.Capital)
	setIfNotEmpty(m, FieldFlag, c.Flag)
	setIfNotEmpty(m, FieldRegion, c.Region)
	setIfNotEmpty(m, FieldSubregion, c.Subregion)
	setIfNotEmpty(m, FieldLanguages, c.Languages)
	return m
}

func setIfNotEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// FromMap builds a record from a decoded document. Unknown keys land in Extra.
func FromMap(m map[string]any) (*Country, error) {
	name, ok := m[FieldName].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("document has no name")
	}
	c := &Country{Name: name}
	for k, v := range m {
		switch k {
		case FieldName:
		case FieldPopulation:
			if v == nil {
				continue
			}
			p, err := toInt64(v)
			if err != nil {
				return nil, fmt.Errorf("population: %w", err)
			}
			c.Population = &p
		case FieldCapital:
			c.Capital = stringValue(v)
		case FieldFlag:
			c.Flag = stringValue(v)
		case FieldRegion:
			c.Region = stringValue(v)
		case FieldSubregion:
			c.Subregion = stringValue(v)
		case FieldLanguages:
			c.Languages = stringValue(v)
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[k] = v
		}
	}
	return c, nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func (c *Country) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

func (c *Country) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}
