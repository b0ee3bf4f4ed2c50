// Package tradermade fetches daily and live currency prices from the
// Tradermade market data API (https://marketdata.tradermade.com).
package tradermade

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/cryptoval"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://marketdata.tradermade.com/api/v1"

// defaultTimeout bounds every request; a hanging fetch must resolve to a
// skipped date, not a hanging run.
const defaultTimeout = 15 * time.Second

// Client talks to the Tradermade API.
type Client struct {
	APIKey  string
	BaseURL string       // defaults to DefaultBaseURL
	HTTP    *http.Client // defaults to a client with a 15s timeout
}

// NewClient returns a client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) http() *http.Client {
	if c.HTTP == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return c.HTTP
}

// daily returns the closing price of a pair for a single calendar day.
//
// found is false when the API answered with no quotes for the day (markets
// do close), or with a null close.
func (c *Client) daily(ctx context.Context, pair cryptoval.Pair, day cryptoval.Date) (price decimal.Decimal, found bool, err error) {
	// https://marketdata.tradermade.com/api/v1/timeseries?currency=LTCGBP&start_date=...&end_date=...
	// {
	//   "quotes": [
	//     { "close": 63.52, "date": "2024-01-01", "high": 64.1, "low": 61.9, "open": 62.0 }
	//   ],
	//   ...
	// }
	addr := fmt.Sprintf("%s/timeseries?api_key=%s&currency=%s&start_date=%s&end_date=%s&interval=daily&format=records",
		c.base(), c.APIKey, pair, day, day)

	var content struct {
		Quotes []struct {
			Date  cryptoval.Date      `json:"date"`
			Close decimal.NullDecimal `json:"close"`
		} `json:"quotes"`
	}
	if err := c.jwget(ctx, addr, &content); err != nil {
		return decimal.Decimal{}, false, err
	}
	if len(content.Quotes) == 0 || !content.Quotes[0].Close.Valid {
		return decimal.Decimal{}, false, nil
	}
	return content.Quotes[0].Close.Decimal, true, nil
}

// Source adapts the client to [cryptoval.QuoteProvider] for one pair.
type Source struct {
	client *Client
	pair   cryptoval.Pair
}

// Source returns a provider scoped to the given pair.
func (c *Client) Source(pair cryptoval.Pair) *Source {
	return &Source{client: c, pair: pair}
}

// Daily implements [cryptoval.QuoteProvider].
func (s *Source) Daily(ctx context.Context, day cryptoval.Date) (decimal.Decimal, bool, error) {
	return s.client.daily(ctx, s.pair, day)
}

var _ cryptoval.QuoteProvider = (*Source)(nil)
