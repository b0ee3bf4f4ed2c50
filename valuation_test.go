package cryptoval

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestSession(t *testing.T, rng Range, source QuoteProvider) *Session {
	t.Helper()
	s, err := NewSession(Config{
		Range:     rng,
		Pair:      "LTCGBP",
		CacheFile: filepath.Join(t.TempDir(), "prices.json"),
		Source:    source,
	})
	if err != nil {
		t.Fatalf("NewSession() unexpected error = %v", err)
	}
	return s
}

func dec(str string) decimal.Decimal { return decimal.RequireFromString(str) }

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), "prices.json")
	source := newFakeSource()

	testCases := []struct {
		name string
		cfg  Config
	}{
		{"missing source", Config{Pair: "LTCGBP", CacheFile: cacheFile}},
		{"missing cache file", Config{Pair: "LTCGBP", Source: source}},
		{"bad pair", Config{Pair: "ltc/gbp", CacheFile: cacheFile, Source: source}},
		{"inverted range", Config{
			Pair:      "LTCGBP",
			CacheFile: cacheFile,
			Source:    source,
			Range:     Range{From: NewDate(2024, 2, 1), To: NewDate(2024, 1, 1)},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSession(tc.cfg); err == nil {
				t.Error("NewSession() expected a configuration error")
			}
		})
	}
}

// The nominal scenario: one withdrawal priced from the API, one deposit
// priced from a previous run's cache.
func TestValue(t *testing.T) {
	day1, day2 := NewDate(2024, 1, 1), NewDate(2024, 1, 2)

	source := newFakeSource()
	source.prices[day1] = dec("50")
	s := newTestSession(t, Range{}, source)
	// day2 was resolved in an earlier run.
	if err := s.resolver.cache.Put(day2, dec("60")); err != nil {
		t.Fatal(err)
	}

	report, err := s.Value(context.Background(), []Transaction{
		NewTransaction(day1, dec("100"), Withdrawal),
		NewTransaction(day2, dec("40"), Deposit),
	})
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}

	if total, ok := report.Total(Withdrawal); !ok || !total.Equal(dec("5000")) {
		t.Errorf("withdrawals total = %s, %v, want 5000, true", total, ok)
	}
	if total, ok := report.Total(Deposit); !ok || !total.Equal(dec("2400")) {
		t.Errorf("deposits total = %s, %v, want 2400, true", total, ok)
	}
	if pl, ok := report.ProfitLoss(); !ok || !pl.Equal(dec("2600")) {
		t.Errorf("profit/loss = %s, %v, want 2600, true", pl, ok)
	}
	if report.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", report.Skipped)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", report.Warnings)
	}
	if source.calls[day2] != 0 {
		t.Errorf("provider called for cached date %s", day2)
	}
}

// Same scenario but the provider has no data for the deposit's date: the
// deposit is skipped, profit/loss becomes undefined.
func TestValueMissingPrice(t *testing.T) {
	day1, day2 := NewDate(2024, 1, 1), NewDate(2024, 1, 2)

	source := newFakeSource()
	source.prices[day1] = dec("50")
	source.missing[day2] = true
	s := newTestSession(t, Range{}, source)

	report, err := s.Value(context.Background(), []Transaction{
		NewTransaction(day1, dec("100"), Withdrawal),
		NewTransaction(day2, dec("40"), Deposit),
	})
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}

	if total, ok := report.Total(Withdrawal); !ok || !total.Equal(dec("5000")) {
		t.Errorf("withdrawals total = %s, %v, want 5000, true", total, ok)
	}
	if _, ok := report.Total(Deposit); ok {
		t.Error("deposits total present, want absent")
	}
	if _, ok := report.ProfitLoss(); ok {
		t.Error("profit/loss present, want absent")
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Kind != WarnNoQuote {
		t.Errorf("warnings = %v, want one no-data warning", report.Warnings)
	}
}

func TestValueEmptyStream(t *testing.T) {
	s := newTestSession(t, Range{}, newFakeSource())

	report, err := s.Value(context.Background(), nil)
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}
	if len(report.Totals) != 0 {
		t.Errorf("totals = %v, want empty", report.Totals)
	}
	if _, ok := report.ProfitLoss(); ok {
		t.Error("profit/loss present, want absent")
	}
	if report.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", report.Skipped)
	}
}

// Range bounds are inclusive on both ends.
func TestValueRangeFilter(t *testing.T) {
	source := newFakeSource()
	for day := range 10 {
		source.prices[NewDate(2024, 1, 1+day)] = dec("10")
	}
	rng := Range{From: NewDate(2024, 1, 3), To: NewDate(2024, 1, 5)}
	s := newTestSession(t, rng, source)

	report, err := s.Value(context.Background(), []Transaction{
		NewTransaction(NewDate(2024, 1, 2), dec("1"), Deposit), // before
		NewTransaction(NewDate(2024, 1, 3), dec("1"), Deposit), // on start
		NewTransaction(NewDate(2024, 1, 4), dec("1"), Deposit), // inside
		NewTransaction(NewDate(2024, 1, 5), dec("1"), Deposit), // on end
		NewTransaction(NewDate(2024, 1, 6), dec("1"), Deposit), // after
	})
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}
	if total, _ := report.Total(Deposit); !total.Equal(dec("30")) {
		t.Errorf("deposits total = %s, want 30 (3 transactions of value 10)", total)
	}
	// out-of-range transactions are not skips, they are simply out of scope.
	if report.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", report.Skipped)
	}
}

func TestValueUndefinedAmount(t *testing.T) {
	day := NewDate(2024, 1, 1)
	source := newFakeSource()
	source.prices[day] = dec("50")
	s := newTestSession(t, Range{}, source)

	report, err := s.Value(context.Background(), []Transaction{
		NewTransaction(day, dec("100"), Withdrawal),
		{Date: day, Category: Withdrawal}, // amount undefined
	})
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}
	if total, _ := report.Total(Withdrawal); !total.Equal(dec("5000")) {
		t.Errorf("withdrawals total = %s, want 5000", total)
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
}

func TestValueTransportWarning(t *testing.T) {
	day := NewDate(2024, 1, 1)
	source := newFakeSource()
	source.err = errors.New("gateway timeout")
	s := newTestSession(t, Range{}, source)

	report, err := s.Value(context.Background(), []Transaction{
		NewTransaction(day, dec("100"), Withdrawal),
	})
	if err != nil {
		t.Fatalf("Value() unexpected error = %v (per-date failures degrade, not abort)", err)
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Kind != WarnTransport {
		t.Errorf("warnings = %v, want one transport warning", report.Warnings)
	}
}

// Several transactions on the same day must share one resolution: the
// at-most-one-fetch guarantee holds under the parallel pool.
func TestValueDeduplicatesDates(t *testing.T) {
	day := NewDate(2024, 1, 1)
	source := newFakeSource()
	source.prices[day] = dec("50")
	s := newTestSession(t, Range{}, source)

	var transactions []Transaction
	for range 20 {
		transactions = append(transactions, NewTransaction(day, dec("1"), Deposit))
	}
	report, err := s.Value(context.Background(), transactions)
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}
	if total, _ := report.Total(Deposit); !total.Equal(dec("1000")) {
		t.Errorf("deposits total = %s, want 1000", total)
	}
	if source.totalCalls() != 1 {
		t.Errorf("provider called %d times, want 1", source.totalCalls())
	}
}

func TestValueCancelled(t *testing.T) {
	day := NewDate(2024, 1, 1)
	source := newFakeSource()
	source.prices[day] = dec("50")
	s := newTestSession(t, Range{}, source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Value(ctx, []Transaction{NewTransaction(day, dec("1"), Deposit)}); err == nil {
		t.Error("Value() with a cancelled context expected an error")
	}
}

// Exactness: totals are accumulated in decimal, many small amounts must sum
// with no drift.
func TestValueExactAccumulation(t *testing.T) {
	day := NewDate(2024, 1, 1)
	source := newFakeSource()
	source.prices[day] = dec("0.1")
	s := newTestSession(t, Range{}, source)

	var transactions []Transaction
	for range 1000 {
		transactions = append(transactions, NewTransaction(day, dec("0.1"), Deposit))
	}
	report, err := s.Value(context.Background(), transactions)
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}
	// 1000 * 0.1 * 0.1 == 10, exactly.
	if total, _ := report.Total(Deposit); !total.Equal(dec("10")) {
		t.Errorf("deposits total = %s, want exactly 10", total)
	}
}
