// Package events publishes record-change notifications. Publishing happens
// after the store write commits, so a failed publish never undoes an update.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"countries/internal/country/models"
)

// TypeCountryUpdated is carried in the event_type record header.
const TypeCountryUpdated = "country.updated"

// CountryUpdated describes a committed partial update.
type CountryUpdated struct {
	ID           string    `json:"id"`
	Country      string    `json:"country"`
	PreviousName string    `json:"previous_name,omitempty"`
	Fields       []string  `json:"fields"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewCountryUpdated stamps an event with a fresh id and time. PreviousName
// is kept only when the update changed the record identity.
func NewCountryUpdated(country, previousName string, fields []string) CountryUpdated {
	evt := CountryUpdated{
		ID:         uuid.NewString(),
		Country:    country,
		Fields:     fields,
		OccurredAt: time.Now().UTC(),
	}
	if models.NormalizeName(previousName) != models.NormalizeName(country) {
		evt.PreviousName = previousName
	}
	return evt
}

type Publisher interface {
	Publish(ctx context.Context, evt CountryUpdated) error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, CountryUpdated) error { return nil }
