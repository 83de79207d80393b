package apura

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const reportLedger = `{"command":"declare","account":"PETR4","description":"{\"class\":\"stock\",\"name\":\"Petrobras PN\"}"}
{"command":"declare","account":"HGLG11","description":"{\"class\":\"fii\"}"}
{"command":"declare","account":"VOO","description":"{\"class\":\"foreign-etf\"}"}
{"command":"post","account":"PETR4","date":"2023-06-01","quantity":1000,"amount":30000,"currency":"BRL"}
{"command":"post","account":"PETR4","date":"2024-03-10","quantity":-500,"amount":-18000,"currency":"BRL"}
{"command":"post","account":"HGLG11","date":"2024-01-05","quantity":100,"amount":15000,"currency":"BRL"}
{"command":"post","account":"HGLG11","date":"2024-09-12","quantity":-100,"amount":-16000,"currency":"BRL"}
{"command":"post","account":"VOO","date":"2024-02-01","quantity":10,"amount":4000,"currency":"USD"}
{"command":"post","account":"VOO","date":"2024-11-20","quantity":-4,"amount":-1800,"currency":"USD"}
`

func reportQuotes() *QuoteCache {
	cache := NewQuoteCache()
	cache.Set(MustParse("2024-02-01"), decimal.NewFromInt(5))
	cache.Set(MustParse("2024-11-20"), decimal.NewFromInt(6))
	return cache
}

func TestNewReport(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(reportLedger))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, err := NewReport(ledger, reportQuotes(), 2024)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	// Holdings: PETR4 keeps 500 at avg 30, VOO keeps 6 at avg 400.
	// HGLG11 was fully liquidated and yields no holding.
	if len(r.Holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(r.Holdings))
	}
	byAccount := map[string]Holding{}
	for _, h := range r.Holdings {
		byAccount[h.Account] = h
	}
	petr := byAccount["PETR4"]
	if !petr.Quantity.Equal(Q(500)) || !petr.AvgCost.Equal(BRL(30)) {
		t.Errorf("PETR4 holding = qty %s avg %s, want 500 at R$30", petr.Quantity, petr.AvgCost)
	}
	voo := byAccount["VOO"]
	if !voo.AvgCost.Equal(USD(400)) {
		t.Errorf("VOO AvgCost = %s, want US$400", voo.AvgCost)
	}
	if !voo.AvgCostBRL.Equal(BRL(2000)) { // purchased at rate 5
		t.Errorf("VOO AvgCostBRL = %s, want R$2000", voo.AvgCostBRL)
	}

	if len(r.Disposals) != 3 {
		t.Fatalf("expected 3 disposals, got %d", len(r.Disposals))
	}

	// Tax: the PETR4 sale (18,000, profit 3,000) stays under the monthly
	// ceiling and is exempt. The fund sale (profit 1,000) is always taxable
	// at 20%. The VOO sale (1,800 USD) is under the foreign ceiling.
	tax := r.Tax
	if !tax.DomesticExempt.Profit.Equal(BRL(3000)) {
		t.Errorf("DomesticExempt.Profit = %s, want R$3000", tax.DomesticExempt.Profit)
	}
	sept := tax.Funds.Month(time.September)
	if !sept.Profit.Equal(BRL(1000)) || !sept.TaxDue.Equal(BRL(200)) {
		t.Errorf("september funds = %+v, want profit R$1000 tax R$200", sept)
	}
	// VOO: sale price 450, avg 400, profit 50/unit x 4 = 200 USD, at rate 6.
	if !tax.ForeignExempt.Profit.Equal(BRL(1200)) {
		t.Errorf("ForeignExempt.Profit = %s, want R$1200", tax.ForeignExempt.Profit)
	}
	if len(tax.Manual) != 0 {
		t.Errorf("expected no manual disposals, got %d", len(tax.Manual))
	}
}

func TestNewReport_MissingQuoteAborts(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(reportLedger))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	_, err = NewReport(ledger, NewQuoteCache(), 2024)
	if err == nil {
		t.Fatal("expected the report to fail without quotes")
	}
	var qerr *QuoteError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *QuoteError, got %T: %v", err, err)
	}
	if qerr.On != MustParse("2024-02-01") {
		t.Errorf("QuoteError.On = %s, want the first foreign purchase date", qerr.On)
	}
}

func TestNewReport_IntegrityErrorAborts(t *testing.T) {
	ledger := NewLedger()
	ledger.DeclareTyped("BAD", Metadata{Class: DomesticStock})
	ledger.Append(Split{
		Account: "BAD", Date: MustParse("2024-01-10"),
		Quantity: Q(-10), Value: BRL(-100),
	})
	_, err := NewReport(ledger, nil, 2024)
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("expected ErrIntegrity, got %v", err)
	}
}
