package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoval"
	"github.com/etnz/cryptoval/csvledger"
	"github.com/etnz/cryptoval/renderer"
	"github.com/google/subcommands"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	start       string
	end         string
	withdrawals string
	deposits    string
	chart       bool
	workers     int
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the ledger and report totals and profit/loss" }
func (*valueCmd) Usage() string {
	return `cval value [-s <date>] [-e <date>] [-withdrawals <csv>] [-deposits <csv>] [-chart]

  Values every transaction in the given CSV files at its date's closing
  price and reports per-category totals and profit/loss. Transactions
  without a resolvable price are skipped and counted, never silently lost.

Usage Examples:
$ cval value -withdrawals "Crypto Withdrawals.csv" -deposits "Crypto Deposits.csv" -s 2024-01-01

`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the reporting range, inclusive. Empty means no lower bound.")
	f.StringVar(&c.end, "e", "", "End date of the reporting range, inclusive. Empty means today.")
	f.StringVar(&c.withdrawals, "withdrawals", "", "CSV file of withdrawals")
	f.StringVar(&c.deposits, "deposits", "", "CSV file of deposits")
	f.BoolVar(&c.chart, "chart", false, "Also print the totals as a bar chart")
	f.IntVar(&c.workers, "workers", 0, "Max parallel price fetches (default 4)")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.withdrawals == "" && c.deposits == "" {
		fmt.Fprintln(os.Stderr, "at least one of -withdrawals or -deposits is required")
		return subcommands.ExitUsageError
	}

	rng, err := parseRange(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	pair, err := appPair()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var transactions []cryptoval.Transaction
	for _, in := range []struct {
		path string
		cat  cryptoval.Category
	}{
		{c.withdrawals, cryptoval.Withdrawal},
		{c.deposits, cryptoval.Deposit},
	} {
		if in.path == "" {
			continue
		}
		loaded, err := csvledger.LoadFile(in.path, in.cat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		transactions = append(transactions, loaded...)
	}

	session, err := cryptoval.NewSession(cryptoval.Config{
		Range:     rng,
		Pair:      pair,
		CacheFile: *cacheFile,
		Workers:   c.workers,
		Source:    newClient().Source(pair),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := session.Value(ctx, transactions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ValuationMarkdown(report))
	if c.chart {
		fmt.Print(renderer.Chart(report))
	}
	return subcommands.ExitSuccess
}
