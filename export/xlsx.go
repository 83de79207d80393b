// Package export writes a year's report to an xlsx workbook, one sheet per
// section, for people who finish their filing in a spreadsheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/drezende/apura"
)

const (
	sheetHoldings  = "Holdings"
	sheetDisposals = "Disposals"
	sheetTax       = "Tax"
)

// Write renders the report as an xlsx workbook. Monetary cells hold plain
// numbers rounded to cents; formatting is left to the spreadsheet.
func Write(w io.Writer, r *apura.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetHoldings); err != nil {
		return fmt.Errorf("could not create workbook: %w", err)
	}
	if _, err := f.NewSheet(sheetDisposals); err != nil {
		return fmt.Errorf("could not create workbook: %w", err)
	}
	if _, err := f.NewSheet(sheetTax); err != nil {
		return fmt.Errorf("could not create workbook: %w", err)
	}

	if err := writeHoldings(f, r); err != nil {
		return err
	}
	if err := writeDisposals(f, r); err != nil {
		return err
	}
	if err := writeTax(f, r.Tax); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}
	return nil
}

func writeHoldings(f *excelize.File, r *apura.Report) error {
	header := []any{"Account", "Class", "Payer", "Name", "Quantity", "Avg Cost", "Value", "Value (BRL)"}
	if err := f.SetSheetRow(sheetHoldings, "A1", &header); err != nil {
		return err
	}
	for i, h := range r.Holdings {
		row := []any{
			h.Account,
			h.Meta.Class.String(),
			h.Meta.Payer,
			h.Meta.Name,
			h.Quantity.String(),
			money(h.AvgCost),
			money(h.Value()),
			money(h.ValueBRL()),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetHoldings, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeDisposals(f *excelize.File, r *apura.Report) error {
	header := []any{"Date", "Account", "Class", "Quantity", "Sale Price", "Avg Cost", "Proceeds", "Profit (BRL)"}
	if err := f.SetSheetRow(sheetDisposals, "A1", &header); err != nil {
		return err
	}
	for i, d := range r.Disposals {
		row := []any{
			d.On.String(),
			d.Account,
			d.Class.String(),
			d.Quantity.Abs().String(),
			money(d.SalePrice),
			money(d.AvgCost),
			money(d.GrossProceeds()),
			money(d.HomeProfit()),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetDisposals, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTax(f *excelize.File, t *apura.TaxReport) error {
	header := []any{"Stream", "Month", "Proceeds", "Profit", "Withheld", "Tax Due"}
	if err := f.SetSheetRow(sheetTax, "A1", &header); err != nil {
		return err
	}
	line := 2
	for _, s := range []*apura.StreamSummary{&t.Domestic, &t.Funds, &t.Foreign} {
		for m := time.January; m <= time.December; m++ {
			b := s.Month(m)
			if b.Proceeds.IsZero() && b.Profit.IsZero() {
				continue
			}
			row := []any{
				s.Stream.String(),
				m.String(),
				money(b.Proceeds),
				money(b.Profit),
				money(b.Levy),
				money(b.TaxDue),
			}
			if err := f.SetSheetRow(sheetTax, fmt.Sprintf("A%d", line), &row); err != nil {
				return err
			}
			line++
		}
	}
	return nil
}

// money converts to the plain cell number: cents precision, no currency.
func money(m apura.Money) float64 {
	v, _ := m.Rounded().Float64()
	return v
}
