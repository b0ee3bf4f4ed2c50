package cryptoval

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Config is the explicit configuration of a valuation session. Nothing in
// the core reads ambient state: everything a run needs is in here.
type Config struct {
	// Range restricts the valuation to transactions within it, bounds
	// included. Either bound may be zero, see Range.
	Range Range
	// Pair is the currency pair priced for the whole session.
	Pair Pair
	// CacheFile is the path of the durable price cache document.
	CacheFile string
	// Workers bounds parallel price fetches. Zero means a small default.
	Workers int
	// Source is the external price provider for Pair.
	Source QuoteProvider
}

// Session is one execution of the valuation pipeline over one transaction
// stream and one date range. It holds no state across runs besides what
// the price cache persists.
type Session struct {
	rng      Range
	pair     Pair
	resolver *PriceResolver
	workers  int
}

// NewSession validates the configuration, loads the price cache, and
// returns a ready session. A malformed configuration is the only fatal
// error in this package: it is rejected here, before any transaction is
// processed.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Source == nil {
		return nil, errors.New("session config: a quote source is required")
	}
	if cfg.CacheFile == "" {
		return nil, errors.New("session config: a cache file is required")
	}
	pair, err := ParsePair(string(cfg.Pair))
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	rng, err := NewRange(cfg.Range.From, cfg.Range.To)
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	cache := OpenPriceCache(cfg.CacheFile)
	return &Session{
		rng:      rng,
		pair:     pair,
		resolver: NewResolver(cache, cfg.Source),
		workers:  workers,
	}, nil
}

// Range returns the session's reporting range.
func (s *Session) Range() Range { return s.rng }

// Pair returns the session's currency pair.
func (s *Session) Pair() Pair { return s.pair }

// Resolver returns the session's price resolver, for callers that want to
// warm the cache outside of a valuation.
func (s *Session) Resolver() *PriceResolver { return s.resolver }

// Value aggregates a transaction stream into a valuation report.
//
// Transactions outside the range are ignored. Transactions without a
// usable amount or price are skipped and counted; partial failure degrades
// the report, it never aborts it. Input order is irrelevant.
//
// Prices for distinct dates are resolved in parallel, bounded by the
// configured worker count. The only error Value returns is cancellation of
// ctx; anything already cached by then stays cached.
func (s *Session) Value(ctx context.Context, transactions []Transaction) (*ValuationReport, error) {
	report := &ValuationReport{
		Range:  s.rng,
		Pair:   s.pair,
		Totals: make(map[Category]decimal.Decimal),
	}

	// Filter down to the transactions that can contribute.
	var kept []Transaction
	for _, tx := range transactions {
		if !s.rng.Contains(tx.Date) {
			continue
		}
		if !tx.Amount.Valid {
			report.Skipped++
			continue
		}
		kept = append(kept, tx)
	}

	prices, warnings, err := s.resolveAll(ctx, distinctDates(kept))
	if err != nil {
		return nil, err
	}
	report.Warnings = warnings

	for _, tx := range kept {
		price, ok := prices[tx.Date]
		if !ok {
			report.Skipped++
			continue
		}
		report.Totals[tx.Category] = report.Totals[tx.Category].Add(tx.Amount.Decimal.Mul(price))
	}
	return report, nil
}

// resolveAll resolves prices for each day using a bounded worker pool.
// Per-day failures become warnings; only cancellation aborts.
func (s *Session) resolveAll(ctx context.Context, days []Date) (map[Date]decimal.Decimal, []Warning, error) {
	var mu sync.Mutex
	prices := make(map[Date]decimal.Decimal, len(days))
	var warnings []Warning

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, day := range days {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			quote, err := s.resolver.Resolve(gctx, day)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				prices[day] = quote.Price
			case errors.Is(err, ErrNoQuote):
				warnings = append(warnings, Warning{Kind: WarnNoQuote, Date: day, Err: err})
			case gctx.Err() != nil:
				return gctx.Err()
			default:
				warnings = append(warnings, Warning{Kind: WarnTransport, Date: day, Err: err})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// The pool finishes in whatever order; keep the report deterministic.
	slices.SortFunc(warnings, func(a, b Warning) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
	return prices, warnings, nil
}

// distinctDates returns the unique transaction dates, preserving first-seen
// order. Resolving per distinct date is what keeps the at-most-one-fetch
// guarantee true when several transactions share a day and fetches run in
// parallel.
func distinctDates(transactions []Transaction) []Date {
	seen := make(map[Date]bool, len(transactions))
	var days []Date
	for _, tx := range transactions {
		if seen[tx.Date] {
			continue
		}
		seen[tx.Date] = true
		days = append(days, tx.Date)
	}
	return days
}
