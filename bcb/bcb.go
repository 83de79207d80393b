// Package bcb fetches official USD/BRL exchange rates from the Brazilian
// central bank's PTAX service.
package bcb

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/drezende/apura"
)

// Endpoint is the Olinda OData service of the central bank. A test may point
// it at a local server.
var Endpoint = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"

// ptaxDateFormat is the MM-DD-YYYY format the OData service wants.
const ptaxDateFormat = "01-02-2006"

// dailyCache is an http.RoundTripper that stores responses under os.TempDir.
// The cache key embeds today's date: PTAX quotes for closed days never change,
// so same-day reruns are free and every entry expires overnight.
type dailyCache struct {
	next http.RoundTripper
}

func (c *dailyCache) key(req *http.Request) string {
	sum := sha1.Sum([]byte(apura.Today().String() + " " + req.URL.String()))
	return filepath.Join(os.TempDir(), fmt.Sprintf("bcb-%x", sum))
}

func (c *dailyCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := c.key(req)
	if raw, err := os.ReadFile(file); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("GET %v %v", resp.Request.URL.Host, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	raw, err := httputil.DumpResponse(resp, true)
	if err == nil {
		err = os.WriteFile(file, raw, 0644)
	}
	if err != nil {
		log.Printf("quote cache write skipped: %v", err)
	}
	return resp, nil
}

// daily returns an HTTP client whose responses are cached until midnight.
func daily() *http.Client {
	return &http.Client{Transport: &dailyCache{http.DefaultTransport}}
}

// getJSON fetches addr and decodes the JSON body into data.
func getJSON(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot GET %v: %v", resp.Request.URL.Host, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}

// ptaxResponse is the OData envelope of the CotacaoDolarPeriodo resource.
type ptaxResponse struct {
	Value []struct {
		Buy  float64 `json:"cotacaoCompra"`
		Sell float64 `json:"cotacaoVenda"`
		On   string  `json:"dataHoraCotacao"` // "2006-01-02 15:04:05.999"
	} `json:"value"`
}

// FetchRange fetches the PTAX buy rate for every business day of the range.
// Weekends and holidays have no quote and are simply absent from the result.
//
// The buy rate (cotação de compra) is the one the tax authority publishes for
// converting foreign proceeds.
func FetchRange(r apura.Range) (map[apura.Date]decimal.Decimal, error) {
	return fetchRange(daily(), r)
}

func fetchRange(client *http.Client, r apura.Range) (map[apura.Date]decimal.Decimal, error) {
	q := url.Values{}
	q.Set("@dataInicial", fmt.Sprintf("'%s'", r.From.Format(ptaxDateFormat)))
	q.Set("@dataFinalCotacao", fmt.Sprintf("'%s'", r.To.Format(ptaxDateFormat)))
	q.Set("$format", "json")
	q.Set("$select", "cotacaoCompra,cotacaoVenda,dataHoraCotacao")
	addr := Endpoint + "/CotacaoDolarPeriodo(dataInicial=@dataInicial,dataFinalCotacao=@dataFinalCotacao)?" + q.Encode()

	var resp ptaxResponse
	if err := getJSON(client, addr, &resp); err != nil {
		return nil, fmt.Errorf("could not fetch PTAX rates: %w", err)
	}

	rates := make(map[apura.Date]decimal.Decimal, len(resp.Value))
	for _, v := range resp.Value {
		if len(v.On) < len(apura.DateFormat) {
			return nil, fmt.Errorf("invalid PTAX quote timestamp %q", v.On)
		}
		on, err := apura.ParseDate(v.On[:len(apura.DateFormat)])
		if err != nil {
			return nil, fmt.Errorf("invalid PTAX quote timestamp %q: %w", v.On, err)
		}
		rates[on] = decimal.NewFromFloat(v.Buy)
	}
	return rates, nil
}

// Fetch fetches the rate applicable on one date: the PTAX of that day, or of
// the nearest earlier business day. It returns every quote found in the
// lookback window so the caller can persist them all.
func Fetch(on apura.Date) (map[apura.Date]decimal.Decimal, error) {
	// Two weeks is enough lookback to cross any holiday streak.
	rates, err := FetchRange(apura.Range{From: on.Add(-14), To: on})
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, &apura.QuoteError{On: on}
	}
	return rates, nil
}
