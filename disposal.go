package apura

import "github.com/shopspring/decimal"

// Holding is the ending position of one asset account as of the cutoff date.
// It is ephemeral: recomputed on every run, never persisted.
type Holding struct {
	Account          string
	Meta             Metadata
	Quantity         Quantity
	AvgCost          Money // per unit, in the position's home currency
	PurchaseValue    Money
	PurchaseQuantity Quantity
	LastSplitOn      Date

	// Foreign positions also carry BRL figures, accumulated with the
	// exchange rate of each purchase date.
	AvgCostBRL       Money
	PurchaseValueBRL Money
}

// Value returns the position value at average cost.
func (h Holding) Value() Money { return h.AvgCost.Mul(h.Quantity) }

// ValueBRL returns the BRL position value at the BRL average cost. For
// domestic positions it equals Value.
func (h Holding) ValueBRL() Money {
	if !h.Meta.Class.IsForeign() {
		return h.Value()
	}
	return h.AvgCostBRL.Mul(h.Quantity)
}

// Disposal is one realized sale event. It is created exactly once per
// qualifying split and never mutated afterwards.
type Disposal struct {
	Account  string
	Class    AssetClass
	On       Date
	Quantity Quantity // signed, negative as ledgered
	Proceeds Money    // signed, negative as ledgered
	SalePrice Money   // per unit, positive
	AvgCost  Money    // average cost per unit as it stood before this disposal
	Profit   Money    // (SalePrice - AvgCost) x units sold, positive-quantity terms
	IsProfit bool     // strictly positive profit only

	// Foreign disposals carry BRL figures converted with the exchange rate
	// applicable on the disposal date.
	Rate         decimal.Decimal
	SalePriceBRL Money
	AvgCostBRL   Money
	ProfitBRL    Money
}

// GrossProceeds returns the absolute sale value in the home currency.
func (d Disposal) GrossProceeds() Money { return d.Proceeds.Abs() }

// GrossProceedsBRL returns the absolute sale value in BRL, converted at the
// disposal-date rate for foreign disposals.
func (d Disposal) GrossProceedsBRL() Money {
	if d.Class.IsForeign() {
		return d.SalePriceBRL.Mul(d.Quantity.Abs())
	}
	return d.GrossProceeds()
}

// HomeProfit returns the profit in BRL: ProfitBRL for foreign disposals,
// Profit itself for domestic ones.
func (d Disposal) HomeProfit() Money {
	if d.Class.IsForeign() {
		return d.ProfitBRL
	}
	return d.Profit
}
