package bcb

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/drezende/apura"
)

const ptaxFixture = `{
  "@odata.context": "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata$metadata#_CotacaoDolarPeriodo",
  "value": [
    {"cotacaoCompra": 4.9431, "cotacaoVenda": 4.9437, "dataHoraCotacao": "2024-02-01 13:09:02.332"},
    {"cotacaoCompra": 4.9684, "cotacaoVenda": 4.9690, "dataHoraCotacao": "2024-02-02 13:03:54.778"}
  ]
}`

func ptaxServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("@dataInicial"); got == "" {
			t.Errorf("missing @dataInicial in query %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, body)
	}))
	old := Endpoint
	Endpoint = srv.URL
	t.Cleanup(func() {
		Endpoint = old
		srv.Close()
	})
	return srv
}

func TestFetchRange(t *testing.T) {
	ptaxServer(t, ptaxFixture)

	rates, err := fetchRange(http.DefaultClient, apura.Range{
		From: apura.MustParse("2024-02-01"),
		To:   apura.MustParse("2024-02-05"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}
	got, ok := rates[apura.MustParse("2024-02-01")]
	if !ok || !got.Equal(decimal.NewFromFloat(4.9431)) {
		t.Errorf("rate for 2024-02-01 = %s (%v), want 4.9431 (the buy rate)", got, ok)
	}
}

func TestFetchRange_EmptyPeriod(t *testing.T) {
	ptaxServer(t, `{"value": []}`)

	rates, err := fetchRange(http.DefaultClient, apura.Range{
		From: apura.MustParse("2024-02-03"), // a Saturday
		To:   apura.MustParse("2024-02-04"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 0 {
		t.Errorf("expected no rates for a weekend, got %d", len(rates))
	}
}

func TestFetchRange_BadTimestamp(t *testing.T) {
	ptaxServer(t, `{"value": [{"cotacaoCompra": 5, "cotacaoVenda": 5, "dataHoraCotacao": "bad"}]}`)

	_, err := fetchRange(http.DefaultClient, apura.Range{
		From: apura.MustParse("2024-02-01"),
		To:   apura.MustParse("2024-02-01"),
	})
	if err == nil {
		t.Fatal("expected an error for a malformed timestamp")
	}
}
