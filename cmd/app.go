// Package cmd implements the CLI application to value a crypto ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoval"
	"github.com/etnz/cryptoval/tradermade"
	"github.com/google/subcommands"
)

// Commands lists the subcommands. A main package registers each of them on
// a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&valueCmd{},
	&fetchCmd{},
	&liveCmd{},
	&cacheCmd{},
	&topicCmd{},
}

// As a CLI application the lifecycle is very short lived, so app-wide
// settings are ok as global flags.

var apiKey = flag.String("api-key", "", "Tradermade API key (defaults to the TRADERMADE_API_KEY environment variable)")
var cacheFile = flag.String("cache-file", ".cval-prices.json", "Path to the price cache document")
var pairFlag = flag.String("pair", "LTCGBP", "Currency pair to value, e.g. LTCGBP")

// newClient returns the Tradermade client from the app configuration.
func newClient() *tradermade.Client {
	key := *apiKey
	if key == "" {
		key = os.Getenv("TRADERMADE_API_KEY")
	}
	return tradermade.NewClient(key)
}

// appPair returns the validated currency pair from the app configuration.
func appPair() (cryptoval.Pair, error) {
	return cryptoval.ParsePair(*pairFlag)
}

// parseRange builds the reporting range from the -s/-e flag values, an
// empty string meaning an open bound.
func parseRange(start, end string) (cryptoval.Range, error) {
	var from, to cryptoval.Date
	var err error
	if start != "" {
		if from, err = cryptoval.ParseDate(start); err != nil {
			return cryptoval.Range{}, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if end != "" {
		if to, err = cryptoval.ParseDate(end); err != nil {
			return cryptoval.Range{}, fmt.Errorf("invalid end date: %w", err)
		}
	}
	return cryptoval.NewRange(from, to)
}
