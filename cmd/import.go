package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/drezende/apura"
	"github.com/drezende/apura/inter"
	"github.com/drezende/apura/schwab"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	ledgerFile string
	broker     string
	date       string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a broker statement" }
func (*importCmd) Usage() string {
	return `apura import -broker <schwab|inter> [-d <date>] <file.csv>

  Imports the trades of a broker statement and appends them to the ledger.
  Schwab statements carry their own dates; Banco Inter brokerage notes do
  not, so -d sets the note's trade date.

  Every imported account must have been declared first: imports never guess
  an asset classification.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file to append to.")
	f.StringVar(&c.broker, "broker", "", "Statement origin: schwab or inter.")
	f.StringVar(&c.date, "d", apura.Today().String(), "Trade date for brokers whose statements carry none.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import wants exactly one statement file")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open statement: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	var splits []apura.Split
	switch c.broker {
	case "schwab":
		splits, err = schwab.Parse(in)
	case "inter":
		var on apura.Date
		on, err = apura.ParseDate(c.date)
		if err == nil {
			splits, err = inter.Parse(in, on)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown broker %q, want schwab or inter\n", c.broker)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not parse statement: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(splits) == 0 {
		fmt.Fprintln(os.Stderr, "Statement contains no trades.")
		return subcommands.ExitSuccess
	}

	// Refuse statements naming undeclared accounts.
	ledger, err := decodeLedgerFile(c.ledgerFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, s := range splits {
		if _, err := ledger.Metadata(s.Account); err != nil {
			fmt.Fprintf(os.Stderr, "%v\nDeclare it first: apura declare %s '{\"class\":...}'\n", err, s.Account)
			return subcommands.ExitFailure
		}
	}

	err = appendLedgerFile(c.ledgerFile, func(w *os.File) error {
		for _, s := range splits {
			if err := apura.EncodeSplit(w, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d splits into %s\n", len(splits), c.ledgerFile)
	return subcommands.ExitSuccess
}
