// Package csvledger decodes exchange-export CSV files into transaction
// streams.
//
// The expected file has a header row with at least a "date" and an
// "amount" column. Dates are the verbose JavaScript form exchanges love,
// "Wed Mar 13 2024 12:34:56 GMT+0000 (Coordinated Universal Time)", but
// RFC 3339 and plain ISO dates are accepted too. Whatever the form, the
// time of day is discarded: downstream pricing is keyed by UTC calendar
// date.
package csvledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/cryptoval"
	"github.com/shopspring/decimal"
)

// jsDateFormat is the JavaScript Date.toString() form, minus the trailing
// "(Coordinated Universal Time)" label which is stripped before parsing.
const jsDateFormat = "Mon Jan 2 2006 15:04:05 GMT-0700"

// LoadFile reads the CSV file at path as transactions of one category.
func LoadFile(path string, cat cryptoval.Category) ([]cryptoval.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", path, err)
	}
	defer f.Close()

	transactions, err := Load(f, cat)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger file %q: %w", path, err)
	}
	return transactions, nil
}

// Load decodes transactions of one category from a CSV stream.
//
// An amount that does not parse as a number is kept as an undefined amount
// rather than dropped here: the valuation counts it as skipped, so the
// loss shows up in the report. A date that does not parse fails the whole
// load; there is no sensible way to price a transaction without a date.
func Load(r io.Reader, cat cryptoval.Category) ([]cryptoval.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	dateCol, amountCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "amount":
			amountCol = i
		}
	}
	if dateCol < 0 || amountCol < 0 {
		return nil, fmt.Errorf("CSV header %v: want \"date\" and \"amount\" columns", header)
	}

	var transactions []cryptoval.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return transactions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		day, err := parseDate(record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var amount decimal.NullDecimal
		if value, err := decimal.NewFromString(strings.TrimSpace(record[amountCol])); err == nil {
			amount = decimal.NullDecimal{Decimal: value, Valid: true}
		}

		transactions = append(transactions, cryptoval.Transaction{
			Date:     day,
			Amount:   amount,
			Category: cat,
		})
	}
}

// parseDate normalizes the accepted timestamp forms to a calendar date.
func parseDate(str string) (cryptoval.Date, error) {
	str = strings.TrimSpace(str)
	// strip the parenthesized timezone label: " (Coordinated Universal Time)"
	if i := strings.Index(str, " ("); i >= 0 {
		str = str[:i]
	}

	for _, layout := range []string{jsDateFormat, time.RFC3339} {
		if on, err := time.Parse(layout, str); err == nil {
			return cryptoval.DateOf(on), nil
		}
	}
	return cryptoval.ParseDate(str)
}
