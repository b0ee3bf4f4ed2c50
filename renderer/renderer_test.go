package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/cryptoval"
	"github.com/shopspring/decimal"
)

func dec(str string) decimal.Decimal { return decimal.RequireFromString(str) }

func testReport() *cryptoval.ValuationReport {
	return &cryptoval.ValuationReport{
		Range: cryptoval.Range{From: cryptoval.NewDate(2024, 1, 1), To: cryptoval.NewDate(2024, 6, 30)},
		Pair:  "LTCGBP",
		Totals: map[cryptoval.Category]decimal.Decimal{
			cryptoval.Withdrawal: dec("5000"),
			cryptoval.Deposit:    dec("2400"),
		},
	}
}

func TestValuationMarkdown(t *testing.T) {
	md := ValuationMarkdown(testReport())

	for _, want := range []string{
		"# LTC Valuation · 2024-01-01 to 2024-06-30",
		"| Withdrawals | £5,000.00 |",
		"| Deposits | £2,400.00 |",
		"**Profit/Loss: +£2,600.00**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("ValuationMarkdown() missing %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "skipped") {
		t.Errorf("ValuationMarkdown() shows a skip note for a clean report:\n%s", md)
	}
}

func TestValuationMarkdownPartial(t *testing.T) {
	report := testReport()
	delete(report.Totals, cryptoval.Deposit)
	report.Skipped = 1
	report.Warnings = []cryptoval.Warning{
		{Kind: cryptoval.WarnNoQuote, Date: cryptoval.NewDate(2024, 1, 2)},
	}

	md := ValuationMarkdown(report)
	if strings.Contains(md, "Profit/Loss") {
		t.Errorf("ValuationMarkdown() shows profit/loss without both categories:\n%s", md)
	}
	if !strings.Contains(md, "1 transaction(s) skipped") {
		t.Errorf("ValuationMarkdown() must surface the skip count:\n%s", md)
	}
	if !strings.Contains(md, "no-data") {
		t.Errorf("ValuationMarkdown() must list warnings:\n%s", md)
	}
}

func TestValuationMarkdownEmpty(t *testing.T) {
	report := testReport()
	report.Totals = map[cryptoval.Category]decimal.Decimal{}

	md := ValuationMarkdown(report)
	if !strings.Contains(md, "No transaction could be valued") {
		t.Errorf("ValuationMarkdown() empty report:\n%s", md)
	}
}

func TestChart(t *testing.T) {
	chart := Chart(testReport())

	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Chart() = %d lines, want 2:\n%s", len(lines), chart)
	}
	if !strings.HasPrefix(lines[0], "Withdrawals") || !strings.Contains(lines[0], "£5,000.00") {
		t.Errorf("Chart() first line = %q", lines[0])
	}
	// the largest total fills the whole width, the other is proportional.
	if got := strings.Count(lines[0], "█"); got != 40 {
		t.Errorf("Chart() withdrawal bar = %d cells, want 40", got)
	}
	if got := strings.Count(lines[1], "█"); got != 19 { // 2400/5000*40 = 19.2
		t.Errorf("Chart() deposit bar = %d cells, want 19", got)
	}
}

func TestChartEmpty(t *testing.T) {
	report := testReport()
	report.Totals = map[cryptoval.Category]decimal.Decimal{}
	if got := Chart(report); got != "" {
		t.Errorf("Chart() on empty totals = %q, want empty", got)
	}
}
