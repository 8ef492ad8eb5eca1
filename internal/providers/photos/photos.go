package photos

import "context"

// PerPage is the number of photos requested from each provider.
const PerPage = 5

// NoDescription replaces a missing or empty description.
const NoDescription = "No description available"

// Photo is a provider photo normalized to one shape. URL is its identity.
type Photo struct {
	URL          string `json:"url"`
	Thumbnail    string `json:"thumbnail"`
	Description  string `json:"description"`
	Photographer string `json:"photographer"`
	SourceURL    string `json:"source_url"`
	Source       string `json:"source"`
}

// Page is one provider's answer. TotalResults is the provider's own count.
type Page struct {
	Photos       []Photo `json:"photos"`
	TotalResults int     `json:"total_results"`
}

// Source searches one photo provider.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) (*Page, error)
}

func describe(s *string) string {
	if s == nil || *s == "" {
		return NoDescription
	}
	return *s
}
