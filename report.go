package apura

import "fmt"

// Report is the full output of one run: the year-end holdings, the year's
// realized disposals, and the aggregated tax summary.
type Report struct {
	Year      int
	Window    Range
	Holdings  []Holding
	Disposals []Disposal
	Tax       *TaxReport
}

// NewReport runs the position tracker over every account of the ledger for
// one calendar year and aggregates the disposals into the tax summary.
//
// Any fatal condition on any account aborts the whole report: tax figures
// are cross-dependent, and an incomplete report is worse than none.
func NewReport(ledger *Ledger, rates RateSource, year int) (*Report, error) {
	window := YearRange(year)
	tracker := &Tracker{Rates: rates}

	r := &Report{Year: year, Window: window}
	for account := range ledger.Accounts() {
		meta, err := ledger.Metadata(account)
		if err != nil {
			return nil, err
		}
		holding, disposals, err := tracker.Track(account, meta, ledger.Splits(account), window)
		if err != nil {
			return nil, fmt.Errorf("could not track account %q: %w", account, err)
		}
		if holding != nil {
			r.Holdings = append(r.Holdings, *holding)
		}
		r.Disposals = append(r.Disposals, disposals...)
	}

	r.Tax = NewTaxReport(year, r.Disposals)
	return r, nil
}
