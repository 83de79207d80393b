package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/drezende/apura"
	"github.com/drezende/apura/renderer"
)

// taxCmd holds the flags for the 'tax' subcommand.
type taxCmd struct {
	ledgerFile string
	quotesFile string
	year       int
	fetch      bool
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "monthly capital-gains tax summary of a year" }
func (*taxCmd) Usage() string {
	return `apura tax [-y <year>]

  Aggregates the year's disposals into the monthly tax summary: taxable
  profit and tax due per month and stream, exempt income, and the sales
  that require manual filing. Defaults to the previous calendar year,
  which is the one being filed.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file to report on.")
	f.StringVar(&c.quotesFile, "quotes", defaultQuotesFile, "Quote cache file.")
	f.IntVar(&c.year, "y", apura.Today().Year()-1, "Tax year.")
	f.BoolVar(&c.fetch, "fetch", true, "Fetch missing exchange rates from the central bank.")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := buildReport(c.ledgerFile, c.quotesFile, c.year, c.fetch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TaxMarkdown(report.Tax))
	return subcommands.ExitSuccess
}
