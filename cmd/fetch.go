package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoval"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	start string
	end   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "prefetch daily prices for a date range into the cache" }
func (*fetchCmd) Usage() string {
	return `cval fetch [-s <date>] [-e <date>]

  Resolves the closing price for every day in the range and stores it in
  the cache, so later valuations run without network access. Days the
  market has no data for are reported and left uncached.

`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "-1m", "Start date of the range, inclusive.")
	f.StringVar(&c.end, "e", "0d", "End date of the range, inclusive.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := parseRange(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if rng.From.IsZero() {
		fmt.Fprintln(os.Stderr, "a start date is required to prefetch")
		return subcommands.ExitUsageError
	}
	pair, err := appPair()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rng = rng.Bounded()
	cache := cryptoval.OpenPriceCache(*cacheFile)
	resolver := cryptoval.NewResolver(cache, newClient().Source(pair))

	var fetched, cached, missing, failed int
	for day := range rng.Days() {
		quote, err := resolver.Resolve(ctx, day)
		switch {
		case err == nil && quote.Origin == cryptoval.Cached:
			cached++
		case err == nil:
			fetched++
		case errors.Is(err, cryptoval.ErrNoQuote):
			missing++
		case ctx.Err() != nil:
			fmt.Fprintln(os.Stderr, "Interrupted; prices fetched so far are cached.")
			return subcommands.ExitFailure
		default:
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	fmt.Printf("%s %s: %d fetched, %d already cached, %d without market data, %d failed\n",
		pair, rng.Label(), fetched, cached, missing, failed)
	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
