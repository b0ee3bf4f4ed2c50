package cryptoval

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction in the ledger.
type Category string

const (
	Withdrawal Category = "withdrawal"
	Deposit    Category = "deposit"
)

// Categories lists all categories, in reporting order.
var Categories = []Category{Withdrawal, Deposit}

// ParseCategory parses a category name.
func ParseCategory(str string) (Category, error) {
	switch Category(str) {
	case Withdrawal, Deposit:
		return Category(str), nil
	}
	return "", fmt.Errorf("unknown category %q: want %q or %q", str, Withdrawal, Deposit)
}

func (c Category) String() string { return string(c) }

// Title returns the category name capitalized for display.
func (c Category) Title() string {
	switch c {
	case Withdrawal:
		return "Withdrawals"
	case Deposit:
		return "Deposits"
	}
	return string(c)
}

func (c *Category) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseCategory(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) { return json.Marshal(string(c)) }

// Transaction is a single dated movement of the asset, as produced by an
// input adapter. It is immutable once built.
//
// Amount is the asset quantity (not a monetary value). An adapter that could
// not parse an amount hands it over with Valid set to false; such
// transactions are skipped and counted during aggregation rather than
// rejected upfront, so one bad row never sinks a whole ledger.
type Transaction struct {
	Date     Date                `json:"date"`
	Amount   decimal.NullDecimal `json:"amount"`
	Category Category            `json:"category"`
}

// NewTransaction builds a transaction with a defined amount.
func NewTransaction(day Date, amount decimal.Decimal, cat Category) Transaction {
	return Transaction{
		Date:     day,
		Amount:   decimal.NullDecimal{Decimal: amount, Valid: true},
		Category: cat,
	}
}

func (t Transaction) String() string {
	amount := "?"
	if t.Amount.Valid {
		amount = t.Amount.Decimal.String()
	}
	return fmt.Sprintf("%s %s %s", t.Date, t.Category, amount)
}
