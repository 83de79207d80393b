package apura

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// AssetClass identifies the tax treatment group of a tradable instrument.
type AssetClass int

const (
	// DomesticStock is a share traded on B3 (ação).
	DomesticStock AssetClass = iota
	// DomesticETF is an exchange traded fund listed on B3.
	DomesticETF
	// RealEstateFund is a Brazilian real-estate fund (FII).
	RealEstateFund
	// ForeignStock is a share held abroad.
	ForeignStock
	// ForeignETF is an exchange traded fund held abroad.
	ForeignETF
	// ForeignREIT is a real-estate investment trust held abroad.
	ForeignREIT
	// DepositaryReceipt is a BDR traded on B3.
	DepositaryReceipt
	// Crypto is a cryptocurrency position.
	Crypto
)

func (c AssetClass) String() string {
	switch c {
	case DomesticStock:
		return "stock"
	case DomesticETF:
		return "etf"
	case RealEstateFund:
		return "fii"
	case ForeignStock:
		return "foreign-stock"
	case ForeignETF:
		return "foreign-etf"
	case ForeignREIT:
		return "foreign-reit"
	case DepositaryReceipt:
		return "bdr"
	case Crypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// ParseAssetClass parses a string into an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch s {
	case "stock":
		return DomesticStock, nil
	case "etf":
		return DomesticETF, nil
	case "fii":
		return RealEstateFund, nil
	case "foreign-stock":
		return ForeignStock, nil
	case "foreign-etf":
		return ForeignETF, nil
	case "foreign-reit":
		return ForeignREIT, nil
	case "bdr":
		return DepositaryReceipt, nil
	case "crypto":
		return Crypto, nil
	default:
		return 0, fmt.Errorf("unknown asset class: %q", s)
	}
}

// IsForeign reports whether positions of this class are kept in a foreign
// currency and need USD/BRL conversion.
func (c AssetClass) IsForeign() bool {
	switch c {
	case ForeignStock, ForeignETF, ForeignREIT, Crypto:
		return true
	default:
		return false
	}
}

// Currency returns the home currency of positions of this class.
func (c AssetClass) Currency() string {
	if c.IsForeign() {
		return "USD"
	}
	return "BRL"
}

// Metadata is the typed classification of one asset account. It is resolved
// once when the ledger is loaded, never re-parsed per disposal.
type Metadata struct {
	Class AssetClass // tax treatment group
	Payer string     // CNPJ or payer identifier for the tax filing
	Name  string     // display name of the instrument
}

// ParseMetadata extracts Metadata from an account's free-text description.
// The description carries a JSON document; the fields of interest are looked
// up by path so extra fields or nesting added by other tools are tolerated.
func ParseMetadata(description string) (Metadata, error) {
	if description == "" {
		return Metadata{}, fmt.Errorf("empty account description")
	}
	var jobj any
	if err := json.Unmarshal([]byte(description), &jobj); err != nil {
		return Metadata{}, fmt.Errorf("account description is not valid JSON: %w", err)
	}

	class, err := jsonString(jobj, "$.class")
	if err != nil {
		return Metadata{}, fmt.Errorf("missing asset class: %w", err)
	}
	ac, err := ParseAssetClass(class)
	if err != nil {
		return Metadata{}, err
	}

	meta := Metadata{Class: ac}
	// payer and name are optional in the description.
	if payer, err := jsonString(jobj, "$.payer"); err == nil {
		meta.Payer = payer
	}
	if name, err := jsonString(jobj, "$.name"); err == nil {
		meta.Name = name
	}
	return meta, nil
}

// jsonString evaluates a jsonpath expression expected to yield a single string.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", err
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("value at %q is not a string but %T", path, jval)
	}
	return s, nil
}
