package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cryptoval"
	"github.com/shopspring/decimal"
)

const chartWidth = 40 // bar length of the largest total, in cells

// Chart renders the per-category totals as a horizontal bar chart, the
// terminal stand-in for the classic withdrawals-vs-deposits bar plot.
func Chart(report *cryptoval.ValuationReport) string {
	currency := report.Pair.Quote()

	// widest label and largest magnitude drive the layout.
	var max decimal.Decimal
	labelWidth := 0
	for _, cat := range cryptoval.Categories {
		total, ok := report.Total(cat)
		if !ok {
			continue
		}
		if total.Abs().GreaterThan(max) {
			max = total.Abs()
		}
		if n := len(cat.Title()); n > labelWidth {
			labelWidth = n
		}
	}
	if max.IsZero() {
		return ""
	}

	var b strings.Builder
	for _, cat := range cryptoval.Categories {
		total, ok := report.Total(cat)
		if !ok {
			continue
		}
		cells := total.Abs().Mul(decimal.NewFromInt(chartWidth)).Div(max).IntPart()
		if cells == 0 && !total.IsZero() {
			cells = 1 // a non-zero total always shows
		}
		fmt.Fprintf(&b, "%-*s %s %s\n",
			labelWidth, cat.Title(),
			strings.Repeat("█", int(cells)),
			cryptoval.M(total, currency).String())
	}
	return b.String()
}
