package models

import "encoding/json"

// Coordinates is the geocoder bounding box as returned upstream:
// [south, north, west, east].
type Coordinates struct {
	BoundingBox []string `json:"boundingbox"`
}

// CountryDetails is the request-scoped enriched view of a record. It is
// never persisted.
type CountryDetails struct {
	Country          *Country
	Coordinates      *Coordinates
	WikipediaSummary *string
}

func (d CountryDetails) MarshalJSON() ([]byte, error) {
	m := d.Country.ToMap()
	m["coordinates"] = d.Coordinates
	m["wikipedia_summary"] = d.WikipediaSummary
	return json.Marshal(m)
}
