package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/drezende/apura"
)

// declareCmd holds the flags for the 'declare' subcommand.
type declareCmd struct {
	ledgerFile string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare an asset account and its classification" }
func (*declareCmd) Usage() string {
	return `apura declare [-l <ledger>] <account> <description>

  Declares an asset account. The description is a JSON document carrying at
  least the asset class:

$ apura declare PETR4 '{"class":"stock","payer":"33.000.167/0001-01","name":"Petrobras PN"}'

  Valid classes: stock, etf, fii, bdr, foreign-stock, foreign-etf,
  foreign-reit, crypto.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file to append to.")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "declare wants exactly an account and a description")
		return subcommands.ExitUsageError
	}
	account, description := f.Arg(0), f.Arg(1)

	// Validate the description before anything lands on disk.
	if _, err := apura.ParseMetadata(description); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid description: %v\n", err)
		return subcommands.ExitUsageError
	}

	err := appendLedgerFile(c.ledgerFile, func(w *os.File) error {
		return apura.EncodeDeclaration(w, account, description)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Declared %s in %s\n", account, c.ledgerFile)
	return subcommands.ExitSuccess
}
