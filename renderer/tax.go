package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/drezende/apura"
)

var hundred = decimal.NewFromInt(100)

// TaxMarkdown renders the monthly tax summary of one year: one table per
// aggregation stream, the exempt buckets, and the disposals left for manual
// filing.
func TaxMarkdown(t *apura.TaxReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Tax Summary %d\n\n", t.Year)

	streamSection(&b, "Domestic equities, ETFs and BDRs", &t.Domestic)
	streamSection(&b, "Real-estate funds (FII)", &t.Funds)
	foreignSection(&b, t)
	exemptSection(&b, t)
	manualSection(&b, t)

	return b.String()
}

// streamSection prints one stream's monthly table, skipping it entirely when
// the stream had no activity in the year.
func streamSection(b *strings.Builder, title string, s *apura.StreamSummary) {
	if s.TotalProfit().IsZero() && s.TotalLevy().IsZero() {
		return
	}
	fmt.Fprintf(b, "## %s (rate %s%%)\n\n", title, s.Rate.Mul(hundred))
	fmt.Fprintln(b, "| Month | Proceeds | Profit | Withheld | Tax Due |")
	fmt.Fprintln(b, "|:---|---:|---:|---:|---:|")
	for m := time.January; m <= time.December; m++ {
		bucket := s.Month(m)
		if bucket.Proceeds.IsZero() && bucket.Profit.IsZero() {
			continue
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			m,
			bucket.Proceeds,
			bucket.Profit.SignedString(),
			bucket.Levy,
			bucket.TaxDue,
		)
	}
	fmt.Fprintf(b, "| **Total** | | **%s** | **%s** | **%s** |\n\n",
		s.TotalProfit().SignedString(), s.TotalLevy(), s.TotalTaxDue())
}

// foreignSection reports the foreign stream. Months under the ceiling are
// exempt and months over it are filed manually, so there is never tax due
// here; the table exists to document the monthly BRL proceeds.
func foreignSection(b *strings.Builder, t *apura.TaxReport) {
	any := false
	for m := time.January; m <= time.December; m++ {
		if !t.Foreign.Month(m).Proceeds.IsZero() {
			any = true
			break
		}
	}
	if !any {
		return
	}
	fmt.Fprint(b, "## Foreign sales\n\n")
	fmt.Fprintln(b, "| Month | Proceeds (BRL) |")
	fmt.Fprintln(b, "|:---|---:|")
	for m := time.January; m <= time.December; m++ {
		bucket := t.Foreign.Month(m)
		if bucket.Proceeds.IsZero() {
			continue
		}
		fmt.Fprintf(b, "| %s | %s |\n", m, bucket.Proceeds)
	}
	fmt.Fprintln(b)
}

func exemptSection(b *strings.Builder, t *apura.TaxReport) {
	if t.DomesticExempt.Proceeds.IsZero() && t.ForeignExempt.Proceeds.IsZero() {
		return
	}
	fmt.Fprint(b, "## Exempt income\n\n")
	fmt.Fprintln(b, "| Source | Proceeds | Profit | Withheld |")
	fmt.Fprintln(b, "|:---|---:|---:|---:|")
	if !t.DomesticExempt.Proceeds.IsZero() {
		fmt.Fprintf(b, "| Domestic sales under %s/month | %s | %s | %s |\n",
			apura.DomesticExemption,
			t.DomesticExempt.Proceeds,
			t.DomesticExempt.Profit.SignedString(),
			t.DomesticExempt.Levy,
		)
	}
	if !t.ForeignExempt.Proceeds.IsZero() {
		fmt.Fprintf(b, "| Foreign sales under %s/month | %s | %s | |\n",
			apura.ForeignExemption,
			t.ForeignExempt.Proceeds,
			t.ForeignExempt.Profit.SignedString(),
		)
	}
	fmt.Fprintln(b)
}

func manualSection(b *strings.Builder, t *apura.TaxReport) {
	if len(t.Manual) == 0 {
		return
	}
	fmt.Fprint(b, "## Manual filing required\n\n")
	fmt.Fprintln(b, "| Date | Account | Class | Proceeds | Profit (BRL) |")
	fmt.Fprintln(b, "|:---|:---|:---|---:|---:|")
	for _, d := range t.Manual {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			d.On, d.Account, d.Class, d.GrossProceeds(), d.HomeProfit().SignedString())
	}
	fmt.Fprintln(b)
}
