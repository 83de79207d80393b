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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	ledgerFile string
	quotesFile string
	year       int
	fetch      bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "year-end positions at average cost" }
func (*holdingsCmd) Usage() string {
	return `apura holdings [-y <year>]

  Displays every open position as of December 31st of the year, with its
  quantity, average cost and acquisition value, the way the annual return's
  assets section wants them.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file to report on.")
	f.StringVar(&c.quotesFile, "quotes", defaultQuotesFile, "Quote cache file.")
	f.IntVar(&c.year, "y", apura.Today().Year(), "Reporting year.")
	f.BoolVar(&c.fetch, "fetch", true, "Fetch missing exchange rates from the central bank.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := buildReport(c.ledgerFile, c.quotesFile, c.year, c.fetch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(report))
	return subcommands.ExitSuccess
}
