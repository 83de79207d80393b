package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/drezende/apura"
	"github.com/drezende/apura/agent"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	ledgerFile string
	quotesFile string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `apura assist [question...]

  Start an interactive session with the AI assistant. It can read the ledger,
  compute positions and taxes, and search for market context.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", defaultLedgerFile, "Ledger file the assistant reads.")
	f.StringVar(&c.quotesFile, "quotes", defaultQuotesFile, "Quote cache file.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = []string{strings.Join(f.Args(), " ")}
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	source := func(year int) (*apura.Report, error) {
		return buildReport(c.ledgerFile, c.quotesFile, year, true)
	}
	fiscal := agent.NewFiscal(source)
	analyst := agent.NewAnalyst()
	a := agent.New(os.Stdout, os.Stdin, prompts, fiscal, analyst)

	if err := a.Run(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
