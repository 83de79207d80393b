package cmd

import (
	"errors"
	"fmt"

	"github.com/drezende/apura"
	"github.com/drezende/apura/bcb"
)

// buildReport loads the ledger and the quote cache and computes the year's
// report. When the computation stops on a missing USD/BRL quote, the quote is
// fetched from the central bank and persisted to the cache file before the
// computation is retried: a rate is durable before any figure derived from it
// exists.
func buildReport(ledgerFile, quotesFile string, year int, fetch bool) (*apura.Report, error) {
	ledger, err := decodeLedgerFile(ledgerFile)
	if err != nil {
		return nil, err
	}
	quotes, err := decodeQuotesFile(quotesFile)
	if err != nil {
		return nil, err
	}

	for {
		report, err := apura.NewReport(ledger, quotes, year)
		if err == nil {
			return report, nil
		}
		var qerr *apura.QuoteError
		if !errors.As(err, &qerr) || !fetch {
			return nil, err
		}

		fetched, err := bcb.Fetch(qerr.On)
		if err != nil {
			return nil, fmt.Errorf("could not resolve quote for %s: %w", qerr.On, err)
		}
		before := quotes.Len()
		for on, rate := range fetched {
			quotes.Set(on, rate)
		}
		if quotes.Len() == before {
			// Nothing new: retrying would loop on the same missing quote.
			return nil, &apura.QuoteError{On: qerr.On}
		}
		if err := encodeQuotesFile(quotesFile, quotes); err != nil {
			return nil, err
		}
	}
}
