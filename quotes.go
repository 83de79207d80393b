package apura

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// QuoteCache holds USD/BRL exchange rates keyed by exact calendar date.
//
// The cache is the durable record of every rate ever used in a report: a rate
// obtained for a missing date must be persisted before the computation that
// needed it is retried.
type QuoteCache struct {
	rates map[Date]decimal.Decimal
	days  []Date // sorted index of the keys in rates
}

// NewQuoteCache creates an empty quote cache.
func NewQuoteCache() *QuoteCache {
	return &QuoteCache{rates: make(map[Date]decimal.Decimal)}
}

// Set records the rate for a date, replacing any previous value.
func (q *QuoteCache) Set(on Date, rate decimal.Decimal) {
	if _, ok := q.rates[on]; !ok {
		i, _ := slices.BinarySearchFunc(q.days, on, compareDates)
		q.days = slices.Insert(q.days, i, on)
	}
	q.rates[on] = rate
}

// Rate returns the rate recorded for exactly that date.
func (q *QuoteCache) Rate(on Date) (decimal.Decimal, bool) {
	r, ok := q.rates[on]
	return r, ok
}

// RateAsOf returns the rate for the given date, falling back to the nearest
// earlier recorded date. It returns a *QuoteError when no rate on or before
// the date is known.
func (q *QuoteCache) RateAsOf(on Date) (decimal.Decimal, error) {
	if r, ok := q.rates[on]; ok {
		return r, nil
	}
	i, _ := slices.BinarySearchFunc(q.days, on, compareDates)
	if i == 0 {
		return decimal.Zero, &QuoteError{On: on}
	}
	return q.rates[q.days[i-1]], nil
}

// Len returns the number of recorded quotes.
func (q *QuoteCache) Len() int { return len(q.days) }

func compareDates(a, b Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

var _ RateSource = (*QuoteCache)(nil)

// quoteRecord is the JSONL persistence shape of one quote.
type quoteRecord struct {
	Date Date            `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// DecodeQuotes reads a quote cache from a stream of JSONL data.
func DecodeQuotes(r io.Reader) (*QuoteCache, error) {
	cache := NewQuoteCache()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec quoteRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode quote line %q: %w", string(lineBytes), err)
		}
		cache.Set(rec.Date, rec.Rate)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read quotes: %w", err)
	}
	return cache, nil
}

// EncodeQuotes writes the cache as JSONL, one quote per line, in date order.
func (q *QuoteCache) EncodeQuotes(w io.Writer) error {
	days := make([]Date, len(q.days))
	copy(days, q.days)
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	enc := json.NewEncoder(w)
	for _, on := range days {
		if err := enc.Encode(quoteRecord{Date: on, Rate: q.rates[on]}); err != nil {
			return fmt.Errorf("could not encode quote for %s: %w", on, err)
		}
	}
	return nil
}
