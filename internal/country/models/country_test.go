package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "countries/pkg/domain-errors"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"France", "france"},
		{"  South   Africa ", "south africa"},
		{"UNITED\tKINGDOM", "united kingdom"},
		{"", ""},
	}
	for _, tt := range tests {
		got := NormalizeName(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, NormalizeName(got), "normalization is idempotent")
	}
}

func TestNewCountryRejectsBlankName(t *testing.T) {
	_, err := NewCountry("   ")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	c, err := NewCountry(" New  Zealand ")
	require.NoError(t, err)
	assert.Equal(t, "New Zealand", c.Name)
}

func TestCountryJSON(t *testing.T) {
	t.Run("extra attributes are flattened", func(t *testing.T) {
		var c Country
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Ghana","population":33000000,"capital":"Accra","currency":"GHS"}`), &c))
		assert.Equal(t, "Ghana", c.Name)
		require.NotNil(t, c.Population)
		assert.Equal(t, int64(33000000), *c.Population)
		assert.Equal(t, "GHS", c.Extra["currency"])

		out, err := json.Marshal(&c)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Ghana","population":33000000,"capital":"Accra","currency":"GHS"}`, string(out))
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		var c Country
		require.Error(t, json.Unmarshal([]byte(`{"capital":"Accra"}`), &c))
	})

	t.Run("fractional population is rejected", func(t *testing.T) {
		var c Country
		require.Error(t, json.Unmarshal([]byte(`{"name":"X","population":1.5}`), &c))
	})
}

func TestCountryUpdate(t *testing.T) {
	name := "Côte d'Ivoire"
	capital := "Yamoussoukro"

	t.Run("null and absent fields are no-ops", func(t *testing.T) {
		var u CountryUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"capital":null,"region":null}`), &u))
		assert.True(t, u.IsEmpty())
		assert.True(t, dErrors.HasCode(u.Validate(), dErrors.CodeBadRequest))
	})

	t.Run("apply merges set fields", func(t *testing.T) {
		c := &Country{Name: "Ivory Coast", Capital: "Abidjan", Region: "Africa"}
		u := CountryUpdate{Name: &name, Capital: &capital}
		require.NoError(t, u.Validate())
		assert.True(t, u.Renames(c))

		u.Apply(c)
		assert.Equal(t, name, c.Name)
		assert.Equal(t, capital, c.Capital)
		assert.Equal(t, "Africa", c.Region)
	})

	t.Run("case-only rename keeps identity", func(t *testing.T) {
		upper := "IVORY COAST"
		u := CountryUpdate{Name: &upper}
		assert.False(t, u.Renames(&Country{Name: "Ivory Coast"}))
	})

	t.Run("unknown keys become extra fields", func(t *testing.T) {
		var u CountryUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"currency":"XOF","motto":null}`), &u))
		assert.Equal(t, map[string]any{"currency": "XOF"}, u.Extra)
		assert.Equal(t, map[string]any{"currency": "XOF"}, u.Fields())
	})

	t.Run("storage keys cannot be written", func(t *testing.T) {
		var u CountryUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"name_ci":"x"}`), &u))
		assert.True(t, dErrors.HasCode(u.Validate(), dErrors.CodeBadRequest))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		blank := "   "
		u := CountryUpdate{Name: &blank}
		u.Normalize()
		assert.True(t, dErrors.HasCode(u.Validate(), dErrors.CodeBadRequest))
	})
}

func TestCountryDetailsJSON(t *testing.T) {
	summary := "A country in Europe."
	d := CountryDetails{
		Country:          &Country{Name: "Austria"},
		Coordinates:      &Coordinates{BoundingBox: []string{"46.3", "49.0", "9.5", "17.1"}},
		WikipediaSummary: &summary,
	}
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Austria","coordinates":{"boundingbox":["46.3","49.0","9.5","17.1"]},"wikipedia_summary":"A country in Europe."}`, string(out))

	out, err = json.Marshal(CountryDetails{Country: &Country{Name: "Austria"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Austria","coordinates":null,"wikipedia_summary":null}`, string(out))
}

type namedDoc map[string]any

func TestCloneCopiesNestedExtra(t *testing.T) {
	pop := int64(5_000_000)
	orig := &Country{
		Name:       "Ireland",
		Population: &pop,
		Extra: map[string]any{
			"languages": map[string]any{"official": []any{"Irish", "English"}},
			"codes":     namedDoc{"iso": "IE", "alt": []string{"IRL"}},
			"note":      nil,
		},
	}

	c := orig.Clone()
	*c.Population = 1
	c.Extra["languages"].(map[string]any)["official"].([]any)[0] = "Gaeilge"
	c.Extra["codes"].(namedDoc)["iso"] = "XX"
	c.Extra["codes"].(namedDoc)["alt"].([]string)[0] = "XXX"

	assert.Equal(t, int64(5_000_000), *orig.Population)
	assert.Equal(t, []any{"Irish", "English"}, orig.Extra["languages"].(map[string]any)["official"])
	assert.Equal(t, "IE", orig.Extra["codes"].(namedDoc)["iso"])
	assert.Equal(t, []string{"IRL"}, orig.Extra["codes"].(namedDoc)["alt"])
	assert.Nil(t, c.Extra["note"])
}
