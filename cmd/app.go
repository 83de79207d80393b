// Package cmd implements the CLI application to compute Brazilian
// capital-gains taxes over an asset ledger.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"

	"github.com/drezende/apura"
)

// Commands lists every subcommand of the application, in help order.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&declareCmd{},
	&postCmd{},
	&fmtCmd{},
	&holdingsCmd{},
	&disposalsCmd{},
	&taxCmd{},
	&quoteCmd{},
	&importCmd{},
	&exportCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const (
	defaultLedgerFile = "ledger.jsonl"
	defaultQuotesFile = "quotes.jsonl"
)

// decodeLedgerFile loads the ledger from disk.
func decodeLedgerFile(filename string) (*apura.Ledger, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger %q: %w", filename, err)
	}
	defer f.Close()
	return apura.DecodeLedger(f)
}

// decodeQuotesFile loads the quote cache from disk. A missing file is an
// empty cache, not an error: quotes are fetched and persisted on demand.
func decodeQuotesFile(filename string) (*apura.QuoteCache, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return apura.NewQuoteCache(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open quotes %q: %w", filename, err)
	}
	defer f.Close()
	return apura.DecodeQuotes(f)
}

// encodeQuotesFile persists the quote cache. Every rate used by a report must
// be durable before the report is produced.
func encodeQuotesFile(filename string, cache *apura.QuoteCache) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not write quotes %q: %w", filename, err)
	}
	defer f.Close()
	return cache.EncodeQuotes(f)
}

// encodeLedgerFile rewrites the ledger in canonical form.
func encodeLedgerFile(filename string, ledger *apura.Ledger) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not write ledger %q: %w", filename, err)
	}
	defer f.Close()
	return apura.EncodeLedger(f, ledger)
}

// appendLedgerFile appends records to the ledger file, creating it if needed.
func appendLedgerFile(filename string, encode func(*os.File) error) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open ledger %q: %w", filename, err)
	}
	defer f.Close()
	return encode(f)
}
