package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cryptoval"
	"github.com/google/subcommands"
)

type cacheCmd struct{}

func (*cacheCmd) Name() string           { return "cache" }
func (*cacheCmd) Synopsis() string       { return "list the cached daily prices" }
func (*cacheCmd) SetFlags(*flag.FlagSet) {}
func (*cacheCmd) Usage() string {
	return `cval cache

  Lists every cached daily price, oldest first. Useful to audit what a
  valuation will use offline.

`
}

func (c *cacheCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pair, err := appPair()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	cache := cryptoval.OpenPriceCache(*cacheFile)
	if cache.Len() == 0 {
		fmt.Printf("Cache %q is empty.\n", *cacheFile)
		return subcommands.ExitSuccess
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# Price Cache · %s\n\n", pair)
	fmt.Fprintln(&md, "| Date | Close |")
	fmt.Fprintln(&md, "|------|------:|")
	for day, price := range cache.All() {
		fmt.Fprintf(&md, "| %s | %s |\n", day, cryptoval.M(price, pair.Quote()))
	}
	fmt.Fprintf(&md, "\n%d day(s) cached in %q.\n", cache.Len(), *cacheFile)

	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
