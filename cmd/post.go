package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/drezende/apura"
)

// postCmd holds the flags for the 'post' subcommand.
type postCmd struct {
	ledgerFile string
	account    string
	date       string
	quantity   string
	amount     string
	currency   string
	action     string
}

func (*postCmd) Name() string     { return "post" }
func (*postCmd) Synopsis() string { return "post a split to an asset account" }
func (*postCmd) Usage() string {
	return `apura post -a <account> -d <date> -q <quantity> -v <amount> [-c <currency>] [-action <action>]

  Posts one split. Quantity and amount are signed: positive for purchases,
  negative for sales. A negative amount with a zero quantity is a cost-basis
  transfer. Zero-amount quantity changes need an action tag (split, bonus).

$ apura post -a PETR4 -d 2024-03-10 -q -500 -v -18000
`
}

func (c *postCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file to append to.")
	f.StringVar(&c.account, "a", "", "Account the split belongs to.")
	f.StringVar(&c.date, "d", apura.Today().String(), "Posting date.")
	f.StringVar(&c.quantity, "q", "0", "Signed quantity of units.")
	f.StringVar(&c.amount, "v", "0", "Signed value of the split.")
	f.StringVar(&c.currency, "c", "", "Currency (defaults to the account's home currency).")
	f.StringVar(&c.action, "action", "", "Optional action tag: split, bonus.")
}

func (c *postCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "post wants an account (-a)")
		return subcommands.ExitUsageError
	}
	on, err := apura.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}

	// The ledger is the source of truth for the account's currency.
	ledger, err := decodeLedgerFile(c.ledgerFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	meta, err := ledger.Metadata(c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	currency := c.currency
	if currency == "" {
		currency = meta.Class.Currency()
	}

	split := apura.Split{
		Account:  c.account,
		Date:     on,
		Quantity: apura.Q(quantity),
		Value:    apura.M(amount, currency),
		Action:   c.action,
	}
	err = appendLedgerFile(c.ledgerFile, func(w *os.File) error {
		return apura.EncodeSplit(w, split)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Posted %s\n", split)
	return subcommands.ExitSuccess
}
