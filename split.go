package apura

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Recognized action tags on zero-value splits.
const (
	// ActionStockSplit marks a quantity adjustment from a share split
	// (desdobramento). The split carries the extra shares at zero value.
	ActionStockSplit = "split"
	// ActionBonus marks shares received as a bonus issue (bonificação).
	ActionBonus = "bonus"
)

// Split is one leg of a ledger transaction posted to an asset account.
//
// Quantity and Value are signed: purchases are positive, disposals negative.
// A zero Quantity with a negative Value is a cost-basis transfer. Value is in
// the position's home currency (BRL for domestic accounts, USD for foreign).
type Split struct {
	Account  string
	Date     Date
	Quantity Quantity
	Value    Money
	Action   string // optional action tag, e.g. ActionStockSplit
}

func (s Split) String() string {
	return fmt.Sprintf("%s %s qty=%s value=%s", s.Date, s.Account, s.Quantity, s.Value)
}

// SplitSource supplies one account's splits, ordered by posting date.
// Same-day splits keep the order in which they were supplied.
type SplitSource interface {
	Splits(account string) []Split
}

// MetadataSource resolves the typed asset metadata of an account.
type MetadataSource interface {
	Metadata(account string) (Metadata, error)
}

// RateSource supplies USD/BRL exchange rates keyed by calendar date.
type RateSource interface {
	// RateAsOf returns the rate for the given date, falling back to the
	// nearest earlier known date. It returns a *QuoteError when no rate on
	// or before the date is known.
	RateAsOf(on Date) (decimal.Decimal, error)
}
