package store_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/stretchr/testify/suite"

	"countries/internal/country/models"
	"countries/internal/country/store"
	"countries/pkg/platform/sentinel"
)

type countryStore interface {
	FindAll(ctx context.Context) ([]*models.Country, error)
	SearchByPrefix(ctx context.Context, query string, limit int) ([]*models.Country, error)
	FindByName(ctx context.Context, name string) (*models.Country, error)
	UpdateFields(ctx context.Context, name string, update models.CountryUpdate) (*models.Country, error)
	Insert(ctx context.Context, country *models.Country) error
}

var (
	_ countryStore = (*store.InMemory)(nil)
	_ countryStore = (*store.MongoStore)(nil)
	_ countryStore = (*store.PostgresStore)(nil)
)

// StoreContractSuite holds the behaviour every backend must share. Backends
// embed it and provide a fresh, empty store per test.
type StoreContractSuite struct {
	suite.Suite
	ctx      context.Context
	store    countryStore
	newStore func() countryStore
}

func (s *StoreContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func ptr[T any](v T) *T { return &v }

func (s *StoreContractSuite) seed(names ...string) {
	for _, n := range names {
		s.Require().NoError(s.store.Insert(s.ctx, &models.Country{Name: n, Capital: "Capital of " + n}))
	}
}

func (s *StoreContractSuite) names(cs []*models.Country) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func (s *StoreContractSuite) TestLookup() {
	s.seed("France", "South Africa")

	s.Run("matches normalized name", func() {
		for _, q := range []string{"France", "france", "  FRANCE ", "south   africa", "South Africa"} {
			found, err := s.store.FindByName(s.ctx, q)
			s.Require().NoError(err, q)
			s.Contains([]string{"France", "South Africa"}, found.Name)
		}
	})

	s.Run("returns ErrNotFound when absent", func() {
		_, err := s.store.FindByName(s.ctx, "Atlantis")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("lists all records", func() {
		all, err := s.store.FindAll(s.ctx)
		s.Require().NoError(err)
		s.ElementsMatch([]string{"France", "South Africa"}, s.names(all))
	})
}

func (s *StoreContractSuite) TestSearch() {
	s.seed("Sweden", "Switzerland", "Spain", "a.b")

	s.Run("prefix is case-insensitive", func() {
		found, err := s.store.SearchByPrefix(s.ctx, "sw", 0)
		s.Require().NoError(err)
		s.ElementsMatch([]string{"Sweden", "Switzerland"}, s.names(found))
	})

	s.Run("empty query returns nothing", func() {
		found, err := s.store.SearchByPrefix(s.ctx, "   ", 0)
		s.Require().NoError(err)
		s.Empty(found)
	})

	s.Run("pattern characters match literally", func() {
		found, err := s.store.SearchByPrefix(s.ctx, ".", 0)
		s.Require().NoError(err)
		s.Empty(found)

		found, err = s.store.SearchByPrefix(s.ctx, "a.", 0)
		s.Require().NoError(err)
		s.Equal([]string{"a.b"}, s.names(found))

		found, err = s.store.SearchByPrefix(s.ctx, "%", 0)
		s.Require().NoError(err)
		s.Empty(found)
	})

	s.Run("limit caps results", func() {
		found, err := s.store.SearchByPrefix(s.ctx, "s", 2)
		s.Require().NoError(err)
		s.Len(found, 2)
	})
}

func (s *StoreContractSuite) TestDefaultSearchLimit() {
	for i := 0; i < store.DefaultSearchLimit+5; i++ {
		s.Require().NoError(s.store.Insert(s.ctx, &models.Country{Name: fmt.Sprintf("Land %03d", i)}))
	}
	found, err := s.store.SearchByPrefix(s.ctx, "land", 0)
	s.Require().NoError(err)
	s.Len(found, store.DefaultSearchLimit)
}

func (s *StoreContractSuite) TestUpdate() {
	s.Run("merges set fields only", func() {
		s.seed("Kenya")
		updated, err := s.store.UpdateFields(s.ctx, "kenya", models.CountryUpdate{Population: ptr(int64(54000000))})
		s.Require().NoError(err)
		s.Equal("Kenya", updated.Name)
		s.Equal("Capital of Kenya", updated.Capital)
		s.Require().NotNil(updated.Population)
		s.Equal(int64(54000000), *updated.Population)

		found, err := s.store.FindByName(s.ctx, "KENYA")
		s.Require().NoError(err)
		s.Equal(int64(54000000), *found.Population)
	})

	s.Run("returns ErrNotFound for unknown record", func() {
		_, err := s.store.UpdateFields(s.ctx, "Nowhere", models.CountryUpdate{Capital: ptr("X")})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rename onto own name in other case succeeds", func() {
		s.seed("Chile")
		updated, err := s.store.UpdateFields(s.ctx, "Chile", models.CountryUpdate{Name: ptr("CHILE")})
		s.Require().NoError(err)
		s.Equal("CHILE", updated.Name)
	})

	s.Run("rename moves the lookup key", func() {
		s.seed("Burma")
		_, err := s.store.UpdateFields(s.ctx, "Burma", models.CountryUpdate{Name: ptr("Myanmar")})
		s.Require().NoError(err)

		_, err = s.store.FindByName(s.ctx, "burma")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		found, err := s.store.FindByName(s.ctx, "myanmar")
		s.Require().NoError(err)
		s.Equal("Capital of Burma", found.Capital)
	})
}

func (s *StoreContractSuite) TestRenameConflict() {
	s.seed("Norway", "Denmark")

	_, err := s.store.UpdateFields(s.ctx, "Norway", models.CountryUpdate{
		Name:    ptr("  denmark "),
		Capital: ptr("Changed"),
	})
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	norway, err := s.store.FindByName(s.ctx, "Norway")
	s.Require().NoError(err)
	s.Equal("Capital of Norway", norway.Capital)

	denmark, err := s.store.FindByName(s.ctx, "Denmark")
	s.Require().NoError(err)
	s.Equal("Capital of Denmark", denmark.Capital)
}

func (s *StoreContractSuite) TestInsertRejectsDuplicateName() {
	s.seed("Peru")
	err := s.store.Insert(s.ctx, &models.Country{Name: " PERU"})
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *StoreContractSuite) TestExtraAttributesRoundTrip() {
	c := &models.Country{
		Name:  "Japan",
		Extra: map[string]any{"currency": "JPY", "tld": ".jp"},
	}
	s.Require().NoError(s.store.Insert(s.ctx, c))

	found, err := s.store.FindByName(s.ctx, "japan")
	s.Require().NoError(err)
	s.Equal("JPY", found.Extra["currency"])
	s.True(strings.HasPrefix(found.Extra["tld"].(string), "."))
}
