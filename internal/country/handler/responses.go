package handler

import "countries/internal/country/models"

// CountryList wraps list and search results.
type CountryList struct {
	Countries []*models.Country `json:"countries"`
}

func toCountryList(countries []*models.Country) CountryList {
	if countries == nil {
		countries = []*models.Country{}
	}
	return CountryList{Countries: countries}
}

// ChatRequest is the body of POST /countries/{name}/chat.
type ChatRequest struct {
	Message string `json:"message"`
}
