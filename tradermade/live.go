package tradermade

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cryptoval"
	"github.com/shopspring/decimal"
)

/*
	{
	    "endpoint": "live",
	    "quotes": [
	        {
	            "ask": 63.74,
	            "bid": 63.58,
	            "base_currency": "LTC",
	            "quote_currency": "GBP",
	            "mid": 63.66
	        }
	    ],
	    "requested_time": "Mon, 01 Jan 2024 12:00:00 GMT"
	}
*/

// Live returns the current mid price for a pair, falling back to the ask
// when the mid is missing (it sometimes is for crypto pairs).
//
// Live prices are for display only; they never enter the daily price cache.
func (c *Client) Live(ctx context.Context, pair cryptoval.Pair) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/live?api_key=%s&currency=%s", c.base(), c.APIKey, pair)

	var jobj interface{}
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return decimal.Decimal{}, fmt.Errorf("error in wget %q: %w", pair, err)
	}

	for _, path := range []string{"$.quotes[0].mid", "$.quotes[0].ask"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer; keep the first one if any.
		if jlist, ok := jval.([]interface{}); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if val, ok := jval.(float64); ok && val > 0 {
			return decimal.NewFromFloat(val), nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("no live price for %q in response", pair)
}
