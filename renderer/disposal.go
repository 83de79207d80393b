package renderer

import (
	"fmt"
	"strings"

	"github.com/drezende/apura"
)

// DisposalsMarkdown renders every realized sale of the year, one row per
// disposal, with the per-unit figures that back the tax computation.
func DisposalsMarkdown(r *apura.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Disposals in %d\n\n", r.Year)
	if len(r.Disposals) == 0 {
		fmt.Fprintln(&b, "No disposals.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Account | Class | Quantity | Sale Price | Avg Cost | Proceeds | Profit (BRL) |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|")
	total := apura.BRL(0)
	for _, d := range r.Disposals {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			d.On,
			d.Account,
			d.Class,
			d.Quantity.Abs(),
			d.SalePrice,
			d.AvgCost,
			d.GrossProceeds(),
			d.HomeProfit().SignedString(),
		)
		total = total.Add(d.HomeProfit())
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | | **%s** |\n", total.SignedString())

	return b.String()
}
