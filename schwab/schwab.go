// Package schwab imports trades from a Charles Schwab transaction-history
// CSV export into ledger splits.
package schwab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/drezende/apura"
)

const dateFormat = "01/02/2006"

// Parse reads a Schwab transaction CSV and returns the splits of its Buy and
// Sell rows. Dividends, wire transfers, fees and every other cash-only action
// do not touch a position and are skipped.
//
// The Value of each split is the negated cash amount: a buy takes cash out of
// the account and puts value into the position; a sell does the opposite.
func Parse(r io.Reader) ([]apura.Split, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := findHeader(reader)
	if err != nil {
		return nil, err
	}

	var splits []apura.Split
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read statement row: %w", err)
		}
		row := asRow(header, record)

		date := row["Date"]
		if date == "" || strings.Contains(strings.ToLower(date), "end") {
			break
		}
		action := strings.ToLower(row["Action"])
		if action != "buy" && action != "sell" {
			continue
		}

		// Settlement rows carry dates like "01/15/2024 as of 01/12/2024":
		// the trade date is the first token.
		on, err := apura.ParseDateFormat(strings.Fields(date)[0], dateFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid trade date %q: %w", date, err)
		}
		quantity, err := parseNumber(row["Quantity"])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q on %s: %w", row["Quantity"], on, err)
		}
		amount, err := parseNumber(row["Amount"])
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q on %s: %w", row["Amount"], on, err)
		}
		symbol := strings.ReplaceAll(strings.ToUpper(row["Symbol"]), " ", "-")
		if symbol == "" {
			return nil, fmt.Errorf("%s row without a symbol on %s", row["Action"], on)
		}

		if action == "sell" {
			quantity = quantity.Neg()
		}
		splits = append(splits, apura.Split{
			Account:  symbol,
			Date:     on,
			Quantity: apura.Q(quantity),
			Value:    apura.M(amount.Neg(), "USD"),
		})
	}
	return splits, nil
}

// findHeader skips the export's title lines until the column header row.
func findHeader(reader *csv.Reader) (map[string]int, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("no header row found in statement")
		}
		if err != nil {
			return nil, fmt.Errorf("could not read statement: %w", err)
		}
		header := make(map[string]int, len(record))
		for i, name := range record {
			header[strings.TrimSpace(name)] = i
		}
		if _, ok := header["Action"]; ok {
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

// parseNumber parses Schwab's cash format: optional $ sign and thousands
// separators.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}
