package renderer

import (
	"github.com/etnz/cryptoval"
)

// valuationView is the flattened, display-ready form of a report.
type valuationView struct {
	Pair       string
	Base       string
	RangeLabel string
	Rows       []totalRow
	ProfitLoss string // empty when undefined
	Skipped    int
	Warnings   []string
}

type totalRow struct {
	Label string
	Value string
}

// ValuationMarkdown renders a valuation report as a markdown document.
func ValuationMarkdown(report *cryptoval.ValuationReport) string {
	view := valuationView{
		Pair:       report.Pair.String(),
		Base:       report.Pair.Base(),
		RangeLabel: report.Range.Label(),
		Skipped:    report.Skipped,
	}

	currency := report.Pair.Quote()
	for _, cat := range cryptoval.Categories {
		total, ok := report.Total(cat)
		if !ok {
			continue
		}
		view.Rows = append(view.Rows, totalRow{
			Label: cat.Title(),
			Value: cryptoval.M(total, currency).String(),
		})
	}
	if pl, ok := report.ProfitLoss(); ok {
		view.ProfitLoss = cryptoval.M(pl, currency).SignedString()
	}
	for _, w := range report.Warnings {
		view.Warnings = append(view.Warnings, w.String())
	}

	return renderTemplate("valuation.md", view)
}
