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

// disposalsCmd holds the flags for the 'disposals' subcommand.
type disposalsCmd struct {
	ledgerFile string
	quotesFile string
	year       int
	fetch      bool
}

func (*disposalsCmd) Name() string     { return "disposals" }
func (*disposalsCmd) Synopsis() string { return "realized sales of the year" }
func (*disposalsCmd) Usage() string {
	return `apura disposals [-y <year>]

  Displays every realized sale of the year with the average cost it was
  priced against and the resulting profit or loss.
`
}

func (c *disposalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file to report on.")
	f.StringVar(&c.quotesFile, "quotes", defaultQuotesFile, "Quote cache file.")
	f.IntVar(&c.year, "y", apura.Today().Year(), "Reporting year.")
	f.BoolVar(&c.fetch, "fetch", true, "Fetch missing exchange rates from the central bank.")
}

func (c *disposalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := buildReport(c.ledgerFile, c.quotesFile, c.year, c.fetch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.DisposalsMarkdown(report))
	return subcommands.ExitSuccess
}
