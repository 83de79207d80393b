package apura

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleLedger = `{"command":"declare","account":"PETR4","description":"{\"class\":\"stock\",\"name\":\"Petrobras PN\"}"}
{"command":"declare","account":"VOO","description":"{\"class\":\"foreign-etf\"}"}
{"command":"post","account":"PETR4","date":"2024-01-10","quantity":100,"amount":3500,"currency":"BRL"}
{"command":"post","account":"PETR4","date":"2024-02-10","quantity":-50,"amount":-1900,"currency":"BRL"}
{"command":"post","account":"VOO","date":"2024-01-15","quantity":2,"amount":900,"currency":"USD"}
`

func TestDecodeLedger(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	meta, err := ledger.Metadata("PETR4")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Class != DomesticStock || meta.Name != "Petrobras PN" {
		t.Errorf("PETR4 metadata = %+v", meta)
	}

	splits := ledger.Splits("PETR4")
	if len(splits) != 2 {
		t.Fatalf("expected 2 PETR4 splits, got %d", len(splits))
	}
	if !splits[0].Quantity.Equal(Q(100)) || !splits[0].Value.Equal(BRL(3500)) {
		t.Errorf("first split = %+v", splits[0])
	}
	if !splits[1].Value.Equal(BRL(-1900)) {
		t.Errorf("second split value = %s, want R$-1900", splits[1].Value)
	}
	if got := ledger.Splits("VOO")[0].Value.Currency(); got != "USD" {
		t.Errorf("VOO currency = %q, want USD", got)
	}
}

func TestDecodeLedger_KeepsChronologicalOrder(t *testing.T) {
	// Posts arrive out of order; the ledger reorders them by date.
	in := `{"command":"declare","account":"A","description":"{\"class\":\"stock\"}"}
{"command":"post","account":"A","date":"2024-02-01","quantity":1,"amount":10,"currency":"BRL"}
{"command":"post","account":"A","date":"2024-01-01","quantity":1,"amount":10,"currency":"BRL"}
`
	ledger, err := DecodeLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	splits := ledger.Splits("A")
	if splits[0].Date != MustParse("2024-01-01") {
		t.Errorf("first split on %s, want 2024-01-01", splits[0].Date)
	}
}

func TestDecodeLedger_MalformedDeclarationFails(t *testing.T) {
	in := `{"command":"declare","account":"A","description":"{\"class\":\"savings\"}"}`
	_, err := DecodeLedger(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected an error for an unknown asset class")
	}
	var merr *MetadataError
	if !errors.As(err, &merr) {
		t.Fatalf("expected *MetadataError, got %T", err)
	}
	if merr.Account != "A" {
		t.Errorf("MetadataError.Account = %q, want A", merr.Account)
	}
}

func TestDecodeLedger_UnknownCommandFails(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"command":"transfer","account":"A"}`))
	if err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestLedger_EncodeDecodeRoundTrip(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("encode: %v", err)
	}

	// declarations come before any post, and amounts stay unquoted.
	text := buf.String()
	if strings.Index(text, `"post"`) < strings.Index(text, `"declare"`) {
		t.Error("declarations must be encoded before posts")
	}
	if strings.Contains(text, `"amount":"`) {
		t.Error("amounts must be encoded as JSON numbers, not strings")
	}

	again, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("decode round trip: %v", err)
	}
	if len(again.Splits("PETR4")) != 2 || len(again.Splits("VOO")) != 1 {
		t.Error("round trip lost splits")
	}
	meta, err := again.Metadata("VOO")
	if err != nil || meta.Class != ForeignETF {
		t.Errorf("round trip VOO metadata = %+v (%v)", meta, err)
	}
}

func TestLedger_UnknownAccountMetadataFails(t *testing.T) {
	_, err := NewLedger().Metadata("GHOST")
	if !errors.Is(err, ErrMetadata) {
		t.Errorf("expected ErrMetadata, got %v", err)
	}
}

func TestLedger_DecimalQuantities(t *testing.T) {
	// Fractional quantities survive the codec exactly.
	in := `{"command":"declare","account":"BTC","description":"{\"class\":\"crypto\"}"}
{"command":"post","account":"BTC","date":"2024-01-01","quantity":0.0035,"amount":1200.50,"currency":"USD"}
`
	ledger, err := DecodeLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s := ledger.Splits("BTC")[0]
	if !s.Quantity.Equal(Q(decimal.RequireFromString("0.0035"))) {
		t.Errorf("quantity = %s, want 0.0035", s.Quantity)
	}
	if !s.Value.Amount().Equal(decimal.RequireFromString("1200.50")) {
		t.Errorf("amount = %s, want 1200.50", s.Value.Amount())
	}
}
