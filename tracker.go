package apura

import "github.com/shopspring/decimal"

// positionState is the explicit state of the fold: a position is either
// empty (no units held, no cost basis) or open.
type positionState int

const (
	positionEmpty positionState = iota
	positionOpen
)

// position is the running state of the weighted-average-cost fold.
type position struct {
	state            positionState
	quantity         Quantity
	avgCost          Money
	purchaseValue    Money
	purchaseQuantity Quantity

	// BRL accumulators, maintained for foreign positions only.
	avgCostBRL       Money
	purchaseValueBRL Money
}

// reset closes the position: a later re-purchase starts a fresh average.
func (p *position) reset(cur string) {
	p.state = positionEmpty
	p.avgCost = M(0, cur)
	p.purchaseValue = M(0, cur)
	p.purchaseQuantity = Q(0)
	p.avgCostBRL = BRL(0)
	p.purchaseValueBRL = BRL(0)
}

// Tracker folds one account's chronological split history into its ending
// holding and the realized disposals of a reporting window.
type Tracker struct {
	// Rates supplies USD/BRL quotes; required for foreign-class accounts.
	Rates RateSource
}

// Track consumes the splits of one account, in date order, up to window.To
// (the cutoff date) and returns the ending Holding (nil when the position is
// empty) plus every Disposal whose date falls inside the window.
//
// A window with a zero From admits disposals from the beginning of history.
// The profit of a disposal always uses the average cost as it stood
// immediately before that disposal.
func (t *Tracker) Track(account string, meta Metadata, splits []Split, window Range) (*Holding, []Disposal, error) {
	cur := meta.Class.Currency()
	foreign := meta.Class.IsForeign()

	var p position
	p.reset(cur)
	var disposals []Disposal
	var lastOn Date

	for _, s := range splits {
		if s.Date.After(window.To) {
			// Splits are ordered, nothing past the cutoff matters.
			break
		}
		if !lastOn.IsZero() && s.Date.Before(lastOn) {
			return nil, nil, &IntegrityError{Account: account, Split: s, Reason: "splits out of date order"}
		}
		lastOn = s.Date

		p.quantity = p.quantity.Add(s.Quantity)
		if p.quantity.IsNegative() {
			return nil, nil, &IntegrityError{Account: account, Split: s, Reason: "holding quantity went negative"}
		}

		switch {
		case s.Value.IsPositive() || (s.Value.IsZero() && isShareAction(s.Action)):
			// A purchase, or extra shares from a split/bonus at zero value.
			p.purchaseValue = p.purchaseValue.Add(s.Value)
			p.purchaseQuantity = p.purchaseQuantity.Add(s.Quantity)
			if p.purchaseQuantity.IsZero() {
				return nil, nil, &IntegrityError{Account: account, Split: s, Reason: "purchase with no accumulated quantity"}
			}
			p.avgCost = p.purchaseValue.Div(p.purchaseQuantity)
			if foreign && !s.Value.IsZero() {
				rate, err := t.rate(s.Date)
				if err != nil {
					return nil, nil, err
				}
				p.purchaseValueBRL = p.purchaseValueBRL.Add(s.Value.Convert(rate, "BRL"))
			}
			if foreign {
				p.avgCostBRL = p.purchaseValueBRL.Div(p.purchaseQuantity)
			}
			p.state = positionOpen

		case s.Value.IsNegative() && s.Quantity.IsZero():
			// Pure cost-basis transfer: adjusts the purchase value, no
			// disposal is recorded.
			if p.state == positionEmpty || p.purchaseQuantity.IsZero() {
				return nil, nil, &IntegrityError{Account: account, Split: s, Reason: "cost-basis transfer on empty position"}
			}
			p.purchaseValue = p.purchaseValue.Add(s.Value)
			if p.purchaseValue.IsNegative() {
				return nil, nil, &IntegrityError{Account: account, Split: s, Reason: "cost-basis transfer exceeds accumulated purchase value"}
			}
			p.avgCost = p.purchaseValue.Div(p.purchaseQuantity)
			if foreign {
				rate, err := t.rate(s.Date)
				if err != nil {
					return nil, nil, err
				}
				p.purchaseValueBRL = p.purchaseValueBRL.Add(s.Value.Convert(rate, "BRL"))
				p.avgCostBRL = p.purchaseValueBRL.Div(p.purchaseQuantity)
			}

		case s.Value.IsNegative() && s.Quantity.IsNegative():
			// A true disposal, priced with the pre-reset average cost.
			if window.Contains(s.Date) {
				d, err := t.newDisposal(account, meta, s, p)
				if err != nil {
					return nil, nil, err
				}
				disposals = append(disposals, d)
			}

		case s.Value.IsNegative():
			// Negative value with positive quantity fits no known category.
			return nil, nil, &IntegrityError{Account: account, Split: s, Reason: "unrecognized negative-value split"}

		case s.Value.IsZero() && !s.Quantity.IsZero():
			return nil, nil, &IntegrityError{Account: account, Split: s, Reason: "zero-value quantity change without a recognized action tag"}

		default:
			// Zero value, zero quantity: a pure cash leg, nothing to do.
		}

		if p.quantity.IsZero() {
			p.reset(cur)
		}
	}

	if p.quantity.IsZero() {
		return nil, disposals, nil
	}
	h := &Holding{
		Account:          account,
		Meta:             meta,
		Quantity:         p.quantity,
		AvgCost:          p.avgCost,
		PurchaseValue:    p.purchaseValue,
		PurchaseQuantity: p.purchaseQuantity,
		LastSplitOn:      lastOn,
		AvgCostBRL:       p.avgCostBRL,
		PurchaseValueBRL: p.purchaseValueBRL,
	}
	return h, disposals, nil
}

// newDisposal prices a sale split against the current average cost.
func (t *Tracker) newDisposal(account string, meta Metadata, s Split, p position) (Disposal, error) {
	salePrice := s.Value.Div(s.Quantity) // both negative, price is positive
	sold := s.Quantity.Abs()
	profit := salePrice.Sub(p.avgCost).Mul(sold)

	d := Disposal{
		Account:   account,
		Class:     meta.Class,
		On:        s.Date,
		Quantity:  s.Quantity,
		Proceeds:  s.Value,
		SalePrice: salePrice,
		AvgCost:   p.avgCost,
		Profit:    profit,
		IsProfit:  profit.IsPositive(),
	}
	if meta.Class.IsForeign() {
		rate, err := t.rate(s.Date)
		if err != nil {
			return Disposal{}, err
		}
		d.Rate = rate
		d.SalePriceBRL = salePrice.Convert(rate, "BRL")
		d.AvgCostBRL = p.avgCost.Convert(rate, "BRL")
		d.ProfitBRL = profit.Convert(rate, "BRL")
	}
	return d, nil
}

func (t *Tracker) rate(on Date) (decimal.Decimal, error) {
	if t.Rates == nil {
		return decimal.Zero, &QuoteError{On: on}
	}
	return t.Rates.RateAsOf(on)
}

func isShareAction(action string) bool {
	return action == ActionStockSplit || action == ActionBonus
}
