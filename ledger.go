package apura

import (
	"iter"
	"maps"
	"slices"
	"sort"
)

// Ledger holds the normalized split history of every tracked asset account,
// together with each account's resolved metadata.
//
// In a Ledger splits are always in chronological order; same-day splits keep
// their original relative order.
type Ledger struct {
	splits   []Split
	accounts map[string]accountRecord // indexed by account name
}

// accountRecord carries what the ledger knows about one declared account.
type accountRecord struct {
	description string // raw free-text description, kept for re-encoding
	meta        Metadata
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		splits:   make([]Split, 0),
		accounts: make(map[string]accountRecord),
	}
}

// Declare registers an asset account with its raw JSON description. The
// metadata is resolved here, once, and never re-parsed per disposal.
func (l *Ledger) Declare(account, description string) error {
	meta, err := ParseMetadata(description)
	if err != nil {
		return &MetadataError{Account: account, Err: err}
	}
	l.accounts[account] = accountRecord{description: description, meta: meta}
	return nil
}

// DeclareTyped registers an asset account with already-resolved metadata.
func (l *Ledger) DeclareTyped(account string, meta Metadata) {
	l.accounts[account] = accountRecord{meta: meta}
}

// Append appends splits to this ledger and maintains the chronological order.
func (l *Ledger) Append(splits ...Split) {
	l.splits = append(l.splits, splits...)
	l.stableSort()
}

// stableSort sorts the ledger by posting date. The sort is stable, meaning
// splits on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.splits, func(i, j int) bool {
		return l.splits[i].Date.Before(l.splits[j].Date)
	})
}

// Splits returns the splits posted to one account, in chronological order.
func (l *Ledger) Splits(account string) []Split {
	var out []Split
	for _, s := range l.splits {
		if s.Account == account {
			out = append(out, s)
		}
	}
	return out
}

// Metadata resolves the typed asset metadata of an account. Unknown accounts
// are a metadata error: classification must never be guessed.
func (l *Ledger) Metadata(account string) (Metadata, error) {
	rec, ok := l.accounts[account]
	if !ok {
		return Metadata{}, &MetadataError{Account: account, Err: ErrMetadata}
	}
	return rec.meta, nil
}

// Accounts iterates over all declared account names in a stable order.
func (l *Ledger) Accounts() iter.Seq[string] {
	return func(yield func(string) bool) {
		names := slices.Collect(maps.Keys(l.accounts))
		slices.Sort(names)
		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}

// AllSplits iterates over every split in the ledger in chronological order.
func (l *Ledger) AllSplits() iter.Seq2[int, Split] {
	return func(yield func(int, Split) bool) {
		for i, s := range l.splits {
			if !yield(i, s) {
				return
			}
		}
	}
}

// OldestSplitDate returns the date of the earliest split in the ledger.
func (l *Ledger) OldestSplitDate() Date {
	if len(l.splits) == 0 {
		return Date{}
	}
	return l.splits[0].Date
}

// NewestSplitDate returns the date of the latest split in the ledger.
func (l *Ledger) NewestSplitDate() Date {
	if len(l.splits) == 0 {
		return Date{}
	}
	return l.splits[len(l.splits)-1].Date
}

var (
	_ SplitSource    = (*Ledger)(nil)
	_ MetadataSource = (*Ledger)(nil)
)
