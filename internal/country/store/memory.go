package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"countries/internal/country/models"
	"countries/pkg/platform/sentinel"
)

// DefaultSearchLimit caps prefix search results when the caller passes no limit.
const DefaultSearchLimit = 50

// InMemory is a map-backed record store keyed by normalized name.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]*models.Country
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]*models.Country)}
}

func (s *InMemory) FindAll(_ context.Context) ([]*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(string) bool { return true }, 0), nil
}

func (s *InMemory) SearchByPrefix(_ context.Context, query string, limit int) ([]*models.Country, error) {
	prefix := models.NormalizeName(query)
	if prefix == "" {
		return []*models.Country{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(key string) bool { return strings.HasPrefix(key, prefix) }, limit), nil
}

// sorted returns clones of matching records ordered by key. Callers hold the lock.
func (s *InMemory) sorted(match func(string) bool, limit int) []*models.Country {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		if match(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]*models.Country, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.records[k].Clone())
	}
	return out
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.records[models.NormalizeName(name)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c.Clone(), nil
}

// UpdateFields merges the non-nil fields of update into the record. A rename
// onto a name held by another record fails with ErrConflict and leaves both
// records untouched.
func (s *InMemory) UpdateFields(_ context.Context, name string, update models.CountryUpdate) (*models.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.NormalizeName(name)
	current, ok := s.records[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if update.Renames(current) {
		if _, taken := s.records[models.NormalizeName(*update.Name)]; taken {
			return nil, sentinel.ErrConflict
		}
	}

	updated := current.Clone()
	update.Apply(updated)
	delete(s.records, key)
	s.records[updated.Key()] = updated
	return updated.Clone(), nil
}

func (s *InMemory) Insert(_ context.Context, country *models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := country.Key()
	if _, exists := s.records[key]; exists {
		return sentinel.ErrConflict
	}
	s.records[key] = country.Clone()
	return nil
}

// Ping always succeeds.
func (s *InMemory) Ping(_ context.Context) error {
	return nil
}
