package cryptoval

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WarningKind classifies a non-fatal price resolution failure.
type WarningKind string

const (
	// WarnNoQuote: the provider has no data for the date.
	WarnNoQuote WarningKind = "no-data"
	// WarnTransport: the provider could not be reached or answered garbage.
	WarnTransport WarningKind = "transport"
)

// Warning records one skipped date with its cause, so the caller can decide
// to retry, alert, or proceed.
type Warning struct {
	Kind WarningKind
	Date Date
	Err  error
}

func (w Warning) String() string { return fmt.Sprintf("[%s] %v", w.Kind, w.Err) }

// ValuationReport is the read-only outcome of a valuation session.
//
// Totals only holds categories that at least one transaction contributed
// to. Skipped counts every transaction excluded for a missing amount or an
// unresolvable price; it is always reported so data loss is never silent.
type ValuationReport struct {
	Range    Range
	Pair     Pair
	Totals   map[Category]decimal.Decimal
	Skipped  int
	Warnings []Warning
}

// Total returns the total value for a category and whether any transaction
// contributed to it.
func (r *ValuationReport) Total(cat Category) (decimal.Decimal, bool) {
	total, ok := r.Totals[cat]
	return total, ok
}

// ProfitLoss returns withdrawals minus deposits. It is only defined when
// both categories contributed, which is also what it reports.
func (r *ValuationReport) ProfitLoss() (decimal.Decimal, bool) {
	withdrawals, okW := r.Totals[Withdrawal]
	deposits, okD := r.Totals[Deposit]
	if !okW || !okD {
		return decimal.Decimal{}, false
	}
	return withdrawals.Sub(deposits), true
}
