package schwab

import (
	"strings"
	"testing"

	"github.com/drezende/apura"
)

const statement = `"Transactions for account Individual ...123 as of 01/31/2024"
"Date","Action","Symbol","Description","Quantity","Price","Fees & Comm","Amount"
"01/05/2024","Buy","VOO","VANGUARD S&P 500 ETF","10","$400.00","","-$4,000.00"
"01/10/2024","Qualified Dividend","VOO","VANGUARD S&P 500 ETF","","","","$12.34"
"01/12/2024","Wire Funds Received","","WIRED FUNDS RECEIVED","","","","$5,000.00"
"01/20/2024 as of 01/18/2024","Sell","VOO","VANGUARD S&P 500 ETF","4","$450.00","$0.25","$1,799.75"
"01/25/2024","NRA Tax Adj","VOO","VANGUARD S&P 500 ETF","","","","-$3.70"
"Transactions Total","","","","","","","$2,808.39"
`

func TestParse(t *testing.T) {
	splits, err := Parse(strings.NewReader(statement))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("expected 2 splits (only Buy and Sell rows), got %d", len(splits))
	}

	buy := splits[0]
	if buy.Account != "VOO" || buy.Date != apura.MustParse("2024-01-05") {
		t.Errorf("buy = %+v", buy)
	}
	if !buy.Quantity.Equal(apura.Q(10)) || !buy.Value.Equal(apura.USD(4000)) {
		t.Errorf("buy qty %s value %s, want 10 and US$4000", buy.Quantity, buy.Value)
	}

	sell := splits[1]
	// "as of" rows keep the first date.
	if sell.Date != apura.MustParse("2024-01-20") {
		t.Errorf("sell date = %s, want 2024-01-20", sell.Date)
	}
	if !sell.Quantity.Equal(apura.Q(-4)) {
		t.Errorf("sell quantity = %s, want -4", sell.Quantity)
	}
	if !sell.Value.Equal(apura.USD(-1799.75)) {
		t.Errorf("sell value = %s, want US$-1799.75", sell.Value)
	}
}

func TestParse_SymbolWithSpaces(t *testing.T) {
	in := `"Date","Action","Symbol","Description","Quantity","Price","Fees & Comm","Amount"
"02/01/2024","Buy","BRK B","BERKSHIRE HATHAWAY","1","$400.00","","-$400.00"
`
	splits, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if splits[0].Account != "BRK-B" {
		t.Errorf("account = %q, want BRK-B", splits[0].Account)
	}
}

func TestParse_MissingHeaderFails(t *testing.T) {
	if _, err := Parse(strings.NewReader("just,a,csv\nwith,no,header\n")); err == nil {
		t.Fatal("expected an error for a statement without a header row")
	}
}

func TestParse_TradeWithoutSymbolFails(t *testing.T) {
	in := `"Date","Action","Symbol","Description","Quantity","Price","Fees & Comm","Amount"
"02/01/2024","Buy","","UNKNOWN","1","$400.00","","-$400.00"
`
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected an error for a trade without a symbol")
	}
}
