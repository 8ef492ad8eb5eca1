package models

import (
	"encoding/json"
	"fmt"

	dErrors "countries/pkg/domain-errors"
	pkgstrings "countries/pkg/platform/strings"
)

// CountryUpdate is a partial update. Nil fields are left untouched; they
// never clear the stored value.
type CountryUpdate struct {
	Name       *string `json:"name,omitempty" yaml:"name,omitempty"`
	Population *int64  `json:"population,omitempty" yaml:"population,omitempty"`
	Capital    *string `json:"capital,omitempty" yaml:"capital,omitempty"`
	Flag       *string `json:"flag,omitempty" yaml:"flag,omitempty"`
	Region     *string `json:"region,omitempty" yaml:"region,omitempty"`
	Subregion  *string `json:"subregion,omitempty" yaml:"subregion,omitempty"`
	Languages  *string `json:"languages,omitempty" yaml:"languages,omitempty"`
	// Extra holds attributes outside the known set. Null values are dropped
	// on decode.
	Extra map[string]any `json:"-" yaml:"-"`
}

// reservedKeys are storage-owned and never writable through an update.
var reservedKeys = map[string]struct{}{"_id": {}, "name_ci": {}, "id": {}}

func (u *CountryUpdate) UnmarshalJSON(data []byte) error {
	type known CountryUpdate
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = CountryUpdate(k)
	u.Extra = nil
	for key, v := range raw {
		switch key {
		case FieldName, FieldPopulation, FieldCapital, FieldFlag, FieldRegion, FieldSubregion, FieldLanguages:
			continue
		}
		if v == nil {
			continue
		}
		if u.Extra == nil {
			u.Extra = make(map[string]any)
		}
		u.Extra[key] = v
	}
	return nil
}

// IsEmpty reports whether the update carries no field at all.
func (u CountryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Population == nil && u.Capital == nil && u.Flag == nil &&
		u.Region == nil && u.Subregion == nil && u.Languages == nil && len(u.Extra) == 0
}

// Normalize collapses whitespace in a new name.
func (u *CountryUpdate) Normalize() {
	if u.Name != nil {
		n := pkgstrings.CollapseSpaces(*u.Name)
		u.Name = &n
	}
}

// Validate rejects updates that would break record invariants.
func (u CountryUpdate) Validate() error {
	if u.IsEmpty() {
		return dErrors.New(dErrors.CodeBadRequest, "no valid fields to update")
	}
	if u.Name != nil && *u.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "country name cannot be empty")
	}
	if u.Population != nil && *u.Population < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "population cannot be negative")
	}
	for key := range u.Extra {
		if _, ok := reservedKeys[key]; ok {
			return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("field %q cannot be updated", key))
		}
	}
	return nil
}

// Renames reports whether applying the update changes the record identity.
func (u CountryUpdate) Renames(current *Country) bool {
	return u.Name != nil && NormalizeName(*u.Name) != current.Key()
}

// Apply merges every non-nil field into c, last write wins per field.
func (u CountryUpdate) Apply(c *Country) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Population != nil {
		p := *u.Population
		c.Population = &p
	}
	applyString(&c.Capital, u.Capital)
	applyString(&c.Flag, u.Flag)
	applyString(&c.Region, u.Region)
	applyString(&c.Subregion, u.Subregion)
	applyString(&c.Languages, u.Languages)
	if len(u.Extra) > 0 && c.Extra == nil {
		c.Extra = make(map[string]any, len(u.Extra))
	}
	for k, v := range u.Extra {
		c.Extra[k] = v
	}
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Fields returns the set fields as a document fragment for backends that
// update in place.
func (u CountryUpdate) Fields() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m[FieldName] = *u.Name
	}
	if u.Population != nil {
		m[FieldPopulation] = *u.Population
	}
	setIfSet(m, FieldCapital, u.Capital)
	setIfSet(m, FieldFlag, u.Flag)
	setIfSet(m, FieldRegion, u.Region)
	setIfSet(m, FieldSubregion, u.Subregion)
	setIfSet(m, FieldLanguages, u.Languages)
	for k, v := range u.Extra {
		m[k] = v
	}
	return m
}

func setIfSet(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}
