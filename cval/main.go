package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cryptoval/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs before anything else: when invoked by the
	// shell's completion hook this prints candidates and exits.
	completion().Complete("cval")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	dates := predict.Something
	csvFiles := predict.Files("*.csv")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"api-key":    predict.Something,
			"cache-file": predict.Files("*.json"),
			"pair":       predict.Set{"LTCGBP", "BTCGBP", "ETHGBP"},
		},
		Sub: map[string]*complete.Command{
			"value": {
				Flags: map[string]complete.Predictor{
					"s":           dates,
					"e":           dates,
					"withdrawals": csvFiles,
					"deposits":    csvFiles,
					"chart":       predict.Nothing,
					"workers":     predict.Something,
				},
			},
			"fetch": {
				Flags: map[string]complete.Predictor{
					"s": dates,
					"e": dates,
				},
			},
			"live":  {},
			"cache": {},
			"topic": {
				Args: predict.Set{"cache", "pricing", "dates", "*"},
			},
		},
	}
}
