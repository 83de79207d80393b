// Package inter imports trades from a Banco Inter brokerage note (nota de
// corretagem) exported as a semicolon-delimited CSV.
package inter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/drezende/apura"
)

// Column headers of the note's trades table.
const (
	colVenue    = "PRAÇA"
	colSide     = "C/V"
	colSecurity = "ESPECIFICAÇÃO DO TÍTULO"
	colQuantity = "QUANTIDADE"
	colValue    = "PREÇO DE LIQUIDAÇÃO(R$)"
)

// Parse reads a brokerage note and returns one split per traded security,
// dated with the note's trade date. The note groups fills per security and
// closes each group with a SUBTOTAL row carrying the aggregated quantity and
// settlement value; those subtotals are what lands in the ledger.
func Parse(r io.Reader, on apura.Date) ([]apura.Split, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := findHeader(reader)
	if err != nil {
		return nil, err
	}

	var splits []apura.Split
	var ticker string
	var sold bool
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read note row: %w", err)
		}
		row := asRow(header, record)

		if strings.HasPrefix(row[colVenue], "RESUMO") {
			// Past the trades table only fee summaries remain.
			break
		}
		if strings.HasPrefix(row[colVenue], "1-Bovespa") {
			ticker = strings.Fields(row[colSecurity])[0]
			sold = row[colSide] == "V"
			continue
		}
		if !strings.HasPrefix(row[colSecurity], "SUBTOTAL") {
			continue
		}
		if ticker == "" {
			return nil, fmt.Errorf("subtotal row without a preceding trade row")
		}

		quantity, err := parseNumber(row[colQuantity])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q for %s: %w", row[colQuantity], ticker, err)
		}
		value, err := parseNumber(row[colValue])
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: %w", row[colValue], ticker, err)
		}
		if sold {
			quantity = quantity.Neg()
			value = value.Neg()
		}
		splits = append(splits, apura.Split{
			Account:  ticker,
			Date:     on,
			Quantity: apura.Q(quantity),
			Value:    apura.M(value, "BRL"),
		})
		ticker = ""
	}
	return splits, nil
}

// findHeader skips the note's title lines until the trades table header.
func findHeader(reader *csv.Reader) (map[string]int, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("no trades table found in note")
		}
		if err != nil {
			return nil, fmt.Errorf("could not read note: %w", err)
		}
		header := make(map[string]int, len(record))
		for i, name := range record {
			header[strings.TrimSpace(name)] = i
		}
		if _, ok := header[colVenue]; ok {
			return header, nil
		}
	}
}

func asRow(header map[string]int, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for name, i := range header {
		if i < len(record) {
			row[name] = strings.TrimSpace(record[i])
		}
	}
	return row
}

// parseNumber parses the note's Brazilian number format: dots as thousands
// separators and a comma as the decimal mark.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
