package quota

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	used  int
}

// InMemory is a per-process fixed-window limiter. One mutex guards the
// check-reset-increment sequence.
type InMemory struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	now     func() time.Time
	windows map[string]*window
}

type Option func(*InMemory)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(m *InMemory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewInMemory allows limit reservations per key every period.
func NewInMemory(limit int, period time.Duration, opts ...Option) *InMemory {
	m := &InMemory{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *InMemory) Allow(_ context.Context, key string) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.start.Add(m.period)) {
		w = &window{start: now}
		m.windows[key] = w
	}

	d := Decision{Limit: m.limit, ResetAt: w.start.Add(m.period)}
	if w.used >= m.limit {
		d.Used = w.used
		return d, nil
	}
	w.used++
	d.Allowed = true
	d.Used = w.used
	return d, nil
}
