// Command ir is the apura CLI: cost basis and Brazilian capital-gains taxes
// over a plain-text asset ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/drezende/apura/cmd"
)

func main() {
	name := path.Base(os.Args[0])

	// Shell completion: when invoked by the shell's completion hook this
	// prints candidates and exits, otherwise it is a no-op.
	completer := &complete.Command{Sub: map[string]*complete.Command{}}
	for _, c := range cmd.Commands {
		completer.Sub[c.Name()] = &complete.Command{
			Flags: map[string]complete.Predictor{
				"l":      predict.Files("*.jsonl"),
				"quotes": predict.Files("*.jsonl"),
			},
		}
	}
	completer.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
