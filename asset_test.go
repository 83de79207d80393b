package apura

import "testing"

func TestAssetClass_RoundTrip(t *testing.T) {
	classes := []AssetClass{
		DomesticStock, DomesticETF, RealEstateFund,
		ForeignStock, ForeignETF, ForeignREIT,
		DepositaryReceipt, Crypto,
	}
	for _, c := range classes {
		got, err := ParseAssetClass(c.String())
		if err != nil {
			t.Errorf("ParseAssetClass(%q): %v", c, err)
			continue
		}
		if got != c {
			t.Errorf("ParseAssetClass(%q) = %v, want %v", c, got, c)
		}
	}
	if _, err := ParseAssetClass("bond"); err == nil {
		t.Error("expected an error for an unknown class")
	}
}

func TestAssetClass_Currency(t *testing.T) {
	tests := []struct {
		class   AssetClass
		foreign bool
		cur     string
	}{
		{DomesticStock, false, "BRL"},
		{RealEstateFund, false, "BRL"},
		{DepositaryReceipt, false, "BRL"}, // BDRs trade on B3 in BRL
		{ForeignStock, true, "USD"},
		{ForeignREIT, true, "USD"},
		{Crypto, true, "USD"},
	}
	for _, tt := range tests {
		if got := tt.class.IsForeign(); got != tt.foreign {
			t.Errorf("%s.IsForeign() = %v, want %v", tt.class, got, tt.foreign)
		}
		if got := tt.class.Currency(); got != tt.cur {
			t.Errorf("%s.Currency() = %q, want %q", tt.class, got, tt.cur)
		}
	}
}

func TestParseMetadata(t *testing.T) {
	meta, err := ParseMetadata(`{"class":"fii","payer":"12.345.678/0001-90","name":"HGLG11"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Class != RealEstateFund {
		t.Errorf("Class = %v, want RealEstateFund", meta.Class)
	}
	if meta.Payer != "12.345.678/0001-90" {
		t.Errorf("Payer = %q", meta.Payer)
	}
	if meta.Name != "HGLG11" {
		t.Errorf("Name = %q", meta.Name)
	}
}

func TestParseMetadata_OptionalFields(t *testing.T) {
	meta, err := ParseMetadata(`{"class":"foreign-stock"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Class != ForeignStock || meta.Payer != "" || meta.Name != "" {
		t.Errorf("got %+v, want bare foreign-stock", meta)
	}
}

func TestParseMetadata_ToleratesExtraFields(t *testing.T) {
	meta, err := ParseMetadata(`{"class":"stock","isin":"BRPETRACNPR6","sector":{"b3":"oil"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Class != DomesticStock {
		t.Errorf("Class = %v, want DomesticStock", meta.Class)
	}
}

func TestParseMetadata_Errors(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"empty", ""},
		{"not json", "just a plain description"},
		{"missing class", `{"name":"PETR4"}`},
		{"unknown class", `{"class":"savings"}`},
		{"class not a string", `{"class":4}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMetadata(tt.description); err == nil {
				t.Errorf("expected an error for %q", tt.description)
			}
		})
	}
}
