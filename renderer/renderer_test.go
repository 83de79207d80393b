package renderer

import (
	"strings"
	"testing"

	"github.com/drezende/apura"
)

func testReport(t *testing.T) *apura.Report {
	t.Helper()
	in := `{"command":"declare","account":"PETR4","description":"{\"class\":\"stock\",\"payer\":\"33.000.167/0001-01\"}"}
{"command":"declare","account":"HGLG11","description":"{\"class\":\"fii\"}"}
{"command":"post","account":"PETR4","date":"2023-06-01","quantity":1000,"amount":30000,"currency":"BRL"}
{"command":"post","account":"PETR4","date":"2024-03-10","quantity":-600,"amount":-21000,"currency":"BRL"}
{"command":"post","account":"HGLG11","date":"2024-01-05","quantity":100,"amount":15000,"currency":"BRL"}
{"command":"post","account":"HGLG11","date":"2024-09-12","quantity":-40,"amount":-6800,"currency":"BRL"}
`
	ledger, err := apura.DecodeLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, err := apura.NewReport(ledger, nil, 2024)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	return r
}

func TestHoldingsMarkdown(t *testing.T) {
	md := HoldingsMarkdown(testReport(t))

	for _, want := range []string{
		"# Holdings on 2024-12-31",
		"| PETR4 | stock | 33.000.167/0001-01 | 400 |",
		"| HGLG11 | fii |",
		"**Total**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("holdings markdown missing %q in:\n%s", want, md)
		}
	}
}

func TestHoldingsMarkdown_Empty(t *testing.T) {
	r := &apura.Report{Year: 2024, Window: apura.YearRange(2024)}
	md := HoldingsMarkdown(r)
	if !strings.Contains(md, "No open positions.") {
		t.Errorf("unexpected markdown:\n%s", md)
	}
}

func TestDisposalsMarkdown(t *testing.T) {
	md := DisposalsMarkdown(testReport(t))

	for _, want := range []string{
		"# Disposals in 2024",
		"2024-03-10 | PETR4",
		"2024-09-12 | HGLG11",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("disposals markdown missing %q in:\n%s", want, md)
		}
	}
}

func TestTaxMarkdown(t *testing.T) {
	r := testReport(t)
	md := TaxMarkdown(r.Tax)

	// PETR4 sold 21,000 in March, over the ceiling: taxable at 15%.
	// HGLG11 sold 6,800 in September with a profit of 800: 20% fund tax.
	for _, want := range []string{
		"# Capital Gains Tax Summary 2024",
		"Domestic equities, ETFs and BDRs (rate 15%)",
		"Real-estate funds (FII) (rate 20%)",
		"March",
		"September",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("tax markdown missing %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Manual filing required") {
		t.Errorf("no manual filing expected in:\n%s", md)
	}
}

func TestTaxMarkdown_SkipsIdleStreams(t *testing.T) {
	md := TaxMarkdown(apura.NewTaxReport(2024, nil))
	if strings.Contains(md, "Real-estate funds") || strings.Contains(md, "Foreign sales") {
		t.Errorf("idle streams must be skipped:\n%s", md)
	}
}
