package apura

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CommandType discriminates the lines of a ledger file.
type CommandType string

const (
	// CmdDeclare declares an asset account and its classification.
	CmdDeclare CommandType = "declare"
	// CmdPost posts a split to an asset account.
	CmdPost CommandType = "post"
)

// declareCmd is the persistence shape of an account declaration.
type declareCmd struct {
	Command     CommandType `json:"command"`
	Account     string      `json:"account"`
	Description string      `json:"description"`
}

// postCmd is the persistence shape of a split.
type postCmd struct {
	Command  CommandType     `json:"command"`
	Account  string          `json:"account"`
	Date     Date            `json:"date"`
	Quantity Quantity        `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Action   string          `json:"action,omitempty"`
}

func (c postCmd) Split() Split {
	return Split{
		Account:  c.Account,
		Date:     c.Date,
		Quantity: c.Quantity,
		Value:    M(c.Amount, c.Currency),
		Action:   c.Action,
	}
}

// DecodeLedger decodes a ledger from a stream of JSONL data. Declarations are
// resolved into typed metadata as they are read; a malformed declaration
// fails the whole decode, never a silent skip.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		switch identifier.Command {
		case CmdDeclare:
			var temp declareCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			if err := ledger.Declare(temp.Account, temp.Description); err != nil {
				return nil, err
			}
		case CmdPost:
			var temp postCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			ledger.Append(temp.Split())
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(lineBytes))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeDeclaration appends a single declaration line.
func EncodeDeclaration(w io.Writer, account, description string) error {
	return json.NewEncoder(w).Encode(declareCmd{
		Command: CmdDeclare, Account: account, Description: description,
	})
}

// EncodeSplit appends a single post line.
func EncodeSplit(w io.Writer, s Split) error {
	return json.NewEncoder(w).Encode(postCmd{
		Command:  CmdPost,
		Account:  s.Account,
		Date:     s.Date,
		Quantity: s.Quantity,
		Amount:   s.Value.Amount(),
		Currency: s.Value.Currency(),
		Action:   s.Action,
	})
}

// EncodeLedger writes the ledger as JSONL: declarations first, then splits in
// chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	for account := range l.Accounts() {
		rec := l.accounts[account]
		cmd := declareCmd{Command: CmdDeclare, Account: account, Description: rec.description}
		if cmd.Description == "" {
			// typed-only declarations are re-encoded as minimal JSON.
			cmd.Description = fmt.Sprintf("{%q:%q}", "class", rec.meta.Class)
		}
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("could not encode declaration of %q: %w", account, err)
		}
	}
	for _, s := range l.splits {
		cmd := postCmd{
			Command:  CmdPost,
			Account:  s.Account,
			Date:     s.Date,
			Quantity: s.Quantity,
			Amount:   s.Value.Amount(),
			Currency: s.Value.Currency(),
			Action:   s.Action,
		}
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("could not encode split %s: %w", s, err)
		}
	}
	return nil
}
