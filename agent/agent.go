// Package agent implements the interactive AI assistant: a facilitator chat
// that delegates to domain experts through function calls.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent drives an interactive chat session between the user and the
// facilitator, which in turn consults the experts.
type Agent struct {
	out         io.Writer
	in          *bufio.Reader
	queued      []string
	Facilitator *Expert
	Experts     []*Expert
}

// New builds an Agent over the given experts. Output goes to w, user input
// comes from r. Initial prompts are answered before reading from r.
func New(w io.Writer, r io.Reader, prompts []string, experts ...*Expert) *Agent {
	return &Agent{
		out:         w,
		in:          bufio.NewReader(r),
		queued:      prompts,
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens a chat for every expert, facilitator last.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("could not start expert %q: %w", e.Name, err)
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "apura> "

// next returns the user's next utterance: queued prompts first, then lines
// read interactively. io.EOF means the session is over.
func (a *Agent) next() (string, error) {
	for len(a.queued) > 0 {
		line := strings.TrimSpace(a.queued[0])
		a.queued = a.queued[1:]
		if line != "" {
			fmt.Fprintln(a.out, line)
			return line, nil
		}
	}
	return a.in.ReadString('\n')
}

// Run is the REPL. 'bye' or Ctrl+D ends the session cleanly.
func (a *Agent) Run(ctx context.Context, client *genai.Client) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "Welcome to the apura tax assistant. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.out, prompt)
		input, err := a.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, answer.Parts[0].Text)
	}
}
