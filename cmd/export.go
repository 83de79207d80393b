package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/drezende/apura"
	"github.com/drezende/apura/export"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	ledgerFile string
	quotesFile string
	year       int
	fetch      bool
	outputFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the year's report to an xlsx workbook" }
func (*exportCmd) Usage() string {
	return `apura export [-y <year>] [-o <file.xlsx>]

  Writes the holdings, disposals and tax summary of a year to an xlsx
  workbook, one sheet per section.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file to report on.")
	f.StringVar(&c.quotesFile, "quotes", defaultQuotesFile, "Quote cache file.")
	f.IntVar(&c.year, "y", apura.Today().Year()-1, "Tax year.")
	f.BoolVar(&c.fetch, "fetch", true, "Fetch missing exchange rates from the central bank.")
	f.StringVar(&c.outputFile, "o", "", "Output file. Defaults to apura-<year>.xlsx.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := buildReport(c.ledgerFile, c.quotesFile, c.year, c.fetch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	filename := c.outputFile
	if filename == "" {
		filename = fmt.Sprintf("apura-%d.xlsx", c.year)
	}
	out, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not create %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := export.Write(out, report); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %s\n", filename)
	return subcommands.ExitSuccess
}
