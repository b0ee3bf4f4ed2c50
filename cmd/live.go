package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoval"
	"github.com/google/subcommands"
)

type liveCmd struct{}

func (*liveCmd) Name() string           { return "live" }
func (*liveCmd) Synopsis() string       { return "print the current market price for the pair" }
func (*liveCmd) SetFlags(*flag.FlagSet) {}
func (*liveCmd) Usage() string {
	return `cval live

  Prints the current market price for the pair. Live prices are a
  convenience for eyeballing; they never enter the daily price cache.

`
}

func (c *liveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pair, err := appPair()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	price, err := newClient().Live(ctx, pair)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching live price: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s %s\n", pair, cryptoval.M(price, pair.Quote()))
	return subcommands.ExitSuccess
}
