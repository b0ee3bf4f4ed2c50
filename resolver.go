package cryptoval

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// ErrNoQuote means the provider has no market data for a date. This is a
// legitimate outcome (exchange closed, pair not yet listed), distinct from
// a transport failure, and it is never cached: tomorrow's run may succeed.
var ErrNoQuote = errors.New("no market data")

// QuoteProvider is the external price-source capability, scoped to one
// currency pair for the whole session.
//
// Daily returns the closing price for a calendar day. found is false when
// the provider answered but holds no data for that day. Any other failure
// (timeout, bad status, malformed payload) is returned as an error.
type QuoteProvider interface {
	Daily(ctx context.Context, day Date) (price decimal.Decimal, found bool, err error)
}

// QuoteOrigin tells where a resolved price came from.
type QuoteOrigin string

const (
	Cached  QuoteOrigin = "cache"
	Fetched QuoteOrigin = "api"
)

// PriceQuote is a resolved price for one day.
type PriceQuote struct {
	Date   Date
	Price  decimal.Decimal
	Origin QuoteOrigin
}

// PriceResolver resolves daily prices, cache first.
//
// Once a date has been resolved successfully, in this run or any earlier
// one, no further network access is ever attempted for it. Only genuine
// price data is cached; failures of any kind are not, so a transient error
// today cannot poison future runs.
//
// The resolver carries no retry policy. Wrap the provider if you want one.
type PriceResolver struct {
	cache  *PriceCache
	source QuoteProvider
}

// NewResolver returns a resolver backed by the given cache and provider.
func NewResolver(cache *PriceCache, source QuoteProvider) *PriceResolver {
	return &PriceResolver{cache: cache, source: source}
}

// Resolve returns the price for a day.
//
// A returned error satisfying [ErrNoQuote] means the day has no market
// data; any other error is a transport-level failure. Both are reportable,
// neither is fatal to a surrounding aggregation.
func (r *PriceResolver) Resolve(ctx context.Context, day Date) (PriceQuote, error) {
	if price, ok := r.cache.Get(day); ok {
		return PriceQuote{Date: day, Price: price, Origin: Cached}, nil
	}

	price, found, err := r.source.Daily(ctx, day)
	if err != nil {
		return PriceQuote{}, fmt.Errorf("fetching price for %s: %w", day, err)
	}
	if !found {
		return PriceQuote{}, fmt.Errorf("%w for %s", ErrNoQuote, day)
	}
	if !price.IsPositive() {
		// a zero or negative close is a provider bug, not an absence of data.
		return PriceQuote{}, fmt.Errorf("fetching price for %s: malformed quote %s", day, price)
	}

	if err := r.cache.Put(day, price); err != nil {
		// The price is still good for this session.
		log.Printf("cache write err (ignored): %v", err)
	}
	return PriceQuote{Date: day, Price: price, Origin: Fetched}, nil
}
