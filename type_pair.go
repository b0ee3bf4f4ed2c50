package cryptoval

import (
	"fmt"
	"regexp"
)

// Pair identifies the currency pair priced for the whole session, in the
// concatenated form used by market data providers, e.g. "LTCGBP".
//
// The first three letters are the asset being held, the last three the
// reporting currency the valuation is expressed in.
type Pair string

var pairRE = regexp.MustCompile(`^[A-Z]{6}$`)

// ParsePair validates a currency pair identifier.
func ParsePair(str string) (Pair, error) {
	if !pairRE.MatchString(str) {
		return "", fmt.Errorf("invalid currency pair %q: want six uppercase letters like \"LTCGBP\"", str)
	}
	return Pair(str), nil
}

// Base returns the asset code (e.g. "LTC" for "LTCGBP").
func (p Pair) Base() string { return string(p[:3]) }

// Quote returns the reporting currency code (e.g. "GBP" for "LTCGBP").
func (p Pair) Quote() string { return string(p[3:]) }

func (p Pair) String() string { return string(p) }
