package currency

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"countries/internal/country/models"
	"countries/internal/providers"
	pkgstrings "countries/pkg/platform/strings"
)

const ProviderID = "exchangerate-api"

// DefaultCurrency is used for countries missing from the table.
const DefaultCurrency = "USD"

//go:embed currencies.json
var currenciesJSON []byte

// table maps normalized country names to ISO 4217 codes. Built once, read only.
var table = mustLoadTable(currenciesJSON)

func mustLoadTable(raw []byte) map[string]string {
	var byName map[string]string
	if err := json.Unmarshal(raw, &byName); err != nil {
		panic(fmt.Sprintf("currency table: %v", err))
	}
	out := make(map[string]string, len(byName))
	for name, code := range byName {
		out[models.NormalizeName(name)] = code
	}
	return out
}

// CurrencyFor returns the local currency of country, or DefaultCurrency.
func CurrencyFor(country string) string {
	if code, ok := table[models.NormalizeName(country)]; ok {
		return code
	}
	return DefaultCurrency
}

// Conversion is the formatted result of converting into a country's currency.
type Conversion struct {
	Country      string  `json:"country"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	ExchangeRate float64 `json:"exchange_rate"`
}

type pairResponse struct {
	Result         string   `json:"result"`
	ErrorType      string   `json:"error-type"`
	ConversionRate *float64 `json:"conversion_rate"`
}

// Client converts amounts through the ExchangeRate-API pair endpoint.
type Client struct {
	cfg  providers.Config
	http *providers.Client
}

func New(cfg providers.Config, opts ...providers.ClientOption) (*Client, error) {
	if err := cfg.Validate(ProviderID, true); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: providers.NewClient(ProviderID, cfg, opts...)}, nil
}

// Convert converts amount of fromCurrency into country's currency. Input is
// validated before any network call.
func (c *Client) Convert(ctx context.Context, country string, amount float64, fromCurrency string) (*Conversion, error) {
	if !(amount > 0) {
		return nil, c.http.InvalidInput("amount must be greater than 0")
	}
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	if from == "" {
		return nil, c.http.InvalidInput("from_currency is required")
	}
	to := CurrencyFor(pkgstrings.TitleCase(country))

	var resp pairResponse
	if err := c.http.GetJSON(ctx, providers.JoinURL(c.cfg.BaseURL, c.cfg.APIKey, "pair", from, to), nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Result != "success" {
		reason := resp.ErrorType
		if reason == "" {
			reason = "unknown error"
		}
		return nil, c.http.Protocol("conversion failed: %s", reason)
	}
	if resp.ConversionRate == nil {
		return nil, c.http.Protocol("response has no conversion_rate")
	}

	rate := *resp.ConversionRate
	return &Conversion{
		Country:      country,
		From:         fmt.Sprintf("%.2f %s", amount, from),
		To:           fmt.Sprintf("%.2f %s", amount*rate, to),
		ExchangeRate: rate,
	}, nil
}
