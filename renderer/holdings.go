package renderer

import (
	"fmt"
	"strings"

	"github.com/drezende/apura"
)

// HoldingsMarkdown renders the year-end holdings the way the annual return's
// assets section ("bens e direitos") wants them: one row per account with the
// position quantity, the average cost and the acquisition value in BRL.
func HoldingsMarkdown(r *apura.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Holdings on %s\n\n", r.Window.To)
	if len(r.Holdings) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Account | Class | Payer | Quantity | Avg Cost | Value | Value (BRL) |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
	total := apura.BRL(0)
	for _, h := range r.Holdings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			h.Account,
			h.Meta.Class,
			h.Meta.Payer,
			h.Quantity,
			h.AvgCost,
			h.Value(),
			h.ValueBRL(),
		)
		total = total.Add(h.ValueBRL())
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** |\n", total)

	return b.String()
}
