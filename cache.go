package cryptoval

import (
	"encoding/json"
	"fmt"
	"iter"
	"log"
	"os"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

// PriceCache is a durable date→price store for one currency pair.
//
// It is a performance optimization, not a source of truth: a missing or
// corrupt cache file is silently replaced by an empty cache, and a failed
// save never fails the caller. The whole document is rewritten on every
// put, so a crash loses at most the price being written, never previously
// resolved ones.
//
// Writes are serialized internally; the cache assumes a single process
// owns the file.
type PriceCache struct {
	path string

	mu     sync.Mutex
	prices map[Date]decimal.Decimal
}

// OpenPriceCache loads the cache document at path. If the file is absent or
// unreadable the cache starts empty; the run then simply fetches more.
func OpenPriceCache(path string) *PriceCache {
	c := &PriceCache{path: path, prices: make(map[Date]decimal.Decimal)}

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("price cache %q unreadable, starting empty: %v", path, err)
		}
		return c
	}

	var doc map[string]decimal.Decimal
	if err := json.Unmarshal(content, &doc); err != nil {
		log.Printf("price cache %q corrupt, starting empty: %v", path, err)
		return c
	}
	for key, price := range doc {
		day, err := ParseDate(key)
		if err != nil {
			log.Printf("price cache %q: dropping entry with bad date %q", path, key)
			continue
		}
		c.prices[day] = price
	}
	return c
}

// Get returns the cached price for a day, if any. Pure lookup.
func (c *PriceCache) Get(day Date) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	price, ok := c.prices[day]
	return price, ok
}

// Put records a price for a day and immediately persists the whole document.
//
// The in-memory entry is kept even when persisting fails: the price is
// still good for the rest of the session. The returned error is for the
// caller to report, not to act on.
func (c *PriceCache) Put(day Date, price decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prices[day] = price
	return c.persist()
}

// persist rewrites the cache document. Callers must hold c.mu.
func (c *PriceCache) persist() error {
	doc := make(map[string]decimal.Decimal, len(c.prices))
	for day, price := range c.prices {
		doc[day.String()] = price
	}
	data, err := json.MarshalIndent(doc, "", " ")
	if err != nil {
		return fmt.Errorf("cannot marshal price cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("cannot write price cache %q: %w", c.path, err)
	}
	return nil
}

// Len returns the number of cached prices.
func (c *PriceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prices)
}

// All iterates over the cached prices in date order.
func (c *PriceCache) All() iter.Seq2[Date, decimal.Decimal] {
	c.mu.Lock()
	days := make([]Date, 0, len(c.prices))
	for day := range c.prices {
		days = append(days, day)
	}
	prices := make(map[Date]decimal.Decimal, len(c.prices))
	for day, price := range c.prices {
		prices[day] = price
	}
	c.mu.Unlock()

	slices.SortFunc(days, func(a, b Date) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	})
	return func(yield func(Date, decimal.Decimal) bool) {
		for _, day := range days {
			if !yield(day, prices[day]) {
				return
			}
		}
	}
}
