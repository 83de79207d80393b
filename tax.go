package apura

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Jurisdiction constants for the Brazilian capital-gains rules.
var (
	// DomesticExemption is the monthly cumulative domestic-equity sales
	// ceiling under which realized gains are exempt.
	DomesticExemption = BRL(20000)
	// ForeignExemption is the monthly cumulative foreign sales ceiling,
	// measured in the positions' home currency.
	ForeignExemption = USD(35000)

	// levyRate is the transaction-level withholding ("dedo-duro") charged on
	// gross sale proceeds regardless of profit or loss: 0.005%.
	levyRate = decimal.New(5, -5)

	domesticTaxRate = decimal.New(15, -2) // equities, ETFs, BDRs
	fundTaxRate     = decimal.New(20, -2) // real-estate funds
	foreignTaxRate  = decimal.New(15, -2)
)

// Stream is one of the three aggregation groups of the tax report.
type Stream int

const (
	// DomesticStream groups domestic equities, ETFs and BDRs.
	DomesticStream Stream = iota
	// FundStream groups real-estate funds (FII).
	FundStream
	// ForeignStream groups foreign stocks, ETFs and REITs.
	ForeignStream
)

func (s Stream) String() string {
	switch s {
	case DomesticStream:
		return "domestic"
	case FundStream:
		return "funds"
	case ForeignStream:
		return "foreign"
	default:
		return "unknown"
	}
}

// streamOf maps an asset class to its aggregation stream. Cryptocurrency has
// no automated stream: its disposals are flagged for manual filing.
func streamOf(c AssetClass) (Stream, bool) {
	switch c {
	case DomesticStock, DomesticETF, DepositaryReceipt:
		return DomesticStream, true
	case RealEstateFund:
		return FundStream, true
	case ForeignStock, ForeignETF, ForeignREIT:
		return ForeignStream, true
	default:
		return 0, false
	}
}

// MonthBucket aggregates one stream's disposals for one month. All twelve
// buckets exist even when empty, so consumers need no existence checks.
// Figures are in BRL.
type MonthBucket struct {
	Proceeds Money // total disposal proceeds of the stream in the month
	Profit   Money // aggregated taxable profit (may be negative)
	Levy     Money // transaction-level withholding accrued in the month
	TaxDue   Money // Profit x rate when Profit > 0, zero otherwise
}

// StreamSummary is the monthly breakdown of one aggregation stream.
type StreamSummary struct {
	Stream Stream
	Rate   decimal.Decimal
	Months [12]MonthBucket // index 0 is January
}

// Month returns the bucket of a calendar month (1-12).
func (s *StreamSummary) Month(m time.Month) MonthBucket { return s.Months[m-1] }

// TotalProfit sums the taxable profit of the twelve buckets.
func (s *StreamSummary) TotalProfit() Money {
	return lo.Reduce(s.Months[:], func(acc Money, b MonthBucket, _ int) Money {
		return acc.Add(b.Profit)
	}, BRL(0))
}

// TotalLevy sums the withholding of the twelve buckets.
func (s *StreamSummary) TotalLevy() Money {
	return lo.Reduce(s.Months[:], func(acc Money, b MonthBucket, _ int) Money {
		return acc.Add(b.Levy)
	}, BRL(0))
}

// TotalTaxDue sums the tax due of the twelve buckets.
func (s *StreamSummary) TotalTaxDue() Money {
	return lo.Reduce(s.Months[:], func(acc Money, b MonthBucket, _ int) Money {
		return acc.Add(b.TaxDue)
	}, BRL(0))
}

// ExemptBucket aggregates the year's exempt disposals of one stream.
type ExemptBucket struct {
	Proceeds Money
	Profit   Money
	Levy     Money // withheld even on exempt sales (domestic only)
}

// NetProfit is the exempt profit net of the transaction levy.
func (b ExemptBucket) NetProfit() Money { return b.Profit.Sub(b.Levy) }

// TaxReport is the aggregated tax summary of one calendar year.
type TaxReport struct {
	Year     int
	Domestic StreamSummary
	Funds    StreamSummary
	Foreign  StreamSummary

	// Year-aggregated exemption buckets.
	DomesticExempt ExemptBucket
	ForeignExempt  ExemptBucket

	// Manual lists disposals excluded from the automated aggregation:
	// foreign sales in months over the exemption ceiling, and crypto.
	// They require out-of-band filing; this is a classification outcome,
	// not an error.
	Manual []Disposal
}

// NewTaxReport reduces a year's disposals into the aggregated tax summary.
// It is a pure reduction: the disposal list is not mutated, and reordering
// disposals within a month does not change any monthly total.
func NewTaxReport(year int, disposals []Disposal) *TaxReport {
	r := &TaxReport{
		Year:     year,
		Domestic: newStreamSummary(DomesticStream, domesticTaxRate),
		Funds:    newStreamSummary(FundStream, fundTaxRate),
		Foreign:  newStreamSummary(ForeignStream, foreignTaxRate),
		DomesticExempt: ExemptBucket{Proceeds: BRL(0), Profit: BRL(0), Levy: BRL(0)},
		ForeignExempt:  ExemptBucket{Proceeds: BRL(0), Profit: BRL(0), Levy: BRL(0)},
	}

	inYear := lo.Filter(disposals, func(d Disposal, _ int) bool {
		return d.On.Year() == year
	})

	// First pass: monthly gross proceeds per stream. The exemption depends
	// on the month's total sales, not just the profitable ones, so it must
	// be known before routing any disposal.
	var domesticTotals, fundTotals, foreignTotalsBRL [12]Money
	var foreignTotals [12]Money // in the foreign home currency, for the ceiling
	for i := range 12 {
		domesticTotals[i] = BRL(0)
		fundTotals[i] = BRL(0)
		foreignTotalsBRL[i] = BRL(0)
		foreignTotals[i] = USD(0)
	}
	for _, d := range inYear {
		m := int(d.On.Month()) - 1
		switch stream, ok := streamOf(d.Class); {
		case !ok:
			// crypto, totaled nowhere
		case stream == DomesticStream:
			domesticTotals[m] = domesticTotals[m].Add(d.GrossProceeds())
		case stream == FundStream:
			fundTotals[m] = fundTotals[m].Add(d.GrossProceeds())
		case stream == ForeignStream:
			foreignTotals[m] = foreignTotals[m].Add(d.GrossProceeds())
			foreignTotalsBRL[m] = foreignTotalsBRL[m].Add(d.GrossProceedsBRL())
		}
	}
	for i := range 12 {
		r.Domestic.Months[i].Proceeds = domesticTotals[i]
		r.Funds.Months[i].Proceeds = fundTotals[i]
		r.Foreign.Months[i].Proceeds = foreignTotalsBRL[i]
	}

	// Second pass: route each disposal.
	for _, d := range inYear {
		m := int(d.On.Month()) - 1
		stream, ok := streamOf(d.Class)
		if !ok {
			r.Manual = append(r.Manual, d)
			continue
		}
		switch stream {
		case DomesticStream:
			levy := d.GrossProceeds().Scale(levyRate)
			if d.IsProfit && domesticTotals[m].LessThanOrEqual(DomesticExemption) {
				r.DomesticExempt.Proceeds = r.DomesticExempt.Proceeds.Add(d.GrossProceeds())
				r.DomesticExempt.Profit = r.DomesticExempt.Profit.Add(d.Profit)
				r.DomesticExempt.Levy = r.DomesticExempt.Levy.Add(levy)
			} else {
				b := &r.Domestic.Months[m]
				b.Profit = b.Profit.Add(d.Profit)
				b.Levy = b.Levy.Add(levy)
			}
		case FundStream:
			b := &r.Funds.Months[m]
			b.Profit = b.Profit.Add(d.Profit)
			b.Levy = b.Levy.Add(d.GrossProceeds().Scale(levyRate))
		case ForeignStream:
			if foreignTotals[m].GreaterThan(ForeignExemption) {
				r.Manual = append(r.Manual, d)
			} else {
				r.ForeignExempt.Proceeds = r.ForeignExempt.Proceeds.Add(d.GrossProceedsBRL())
				r.ForeignExempt.Profit = r.ForeignExempt.Profit.Add(d.ProfitBRL)
			}
		}
	}

	// Final pass: tax is due only on months with positive aggregated profit.
	for _, s := range []*StreamSummary{&r.Domestic, &r.Funds, &r.Foreign} {
		for i := range s.Months {
			if s.Months[i].Profit.IsPositive() {
				s.Months[i].TaxDue = s.Months[i].Profit.Scale(s.Rate)
			}
		}
	}
	return r
}

func newStreamSummary(stream Stream, rate decimal.Decimal) StreamSummary {
	s := StreamSummary{Stream: stream, Rate: rate}
	for i := range s.Months {
		s.Months[i] = MonthBucket{
			Proceeds: BRL(0),
			Profit:   BRL(0),
			Levy:     BRL(0),
			TaxDue:   BRL(0),
		}
	}
	return s
}
