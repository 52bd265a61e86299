package jupiter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shihanhana/jupiter-swap-api-client/pkg/jupiter/codec"
)

func TestQuoteResponseRoundTrip(t *testing.T) {
	var q QuoteResponse
	if err := json.Unmarshal([]byte(quoteFixture), &q); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if q.InputMint != mustKey(solMint) || q.OutAmount != 1523456 {
		t.Fatalf("unexpected quote %+v", q)
	}
	if q.PriceImpactPct.String() != "0.0001" {
		t.Fatalf("unexpected price impact %s", q.PriceImpactPct)
	}
	if q.PlatformFee != nil {
		t.Fatalf("expected no platform fee, got %+v", q.PlatformFee)
	}
	if len(q.RoutePlan) != 1 || q.RoutePlan[0].SwapInfo.Label != "Raydium" || q.RoutePlan[0].SwapInfo.FeeAmount != 2500 {
		t.Fatalf("unexpected route plan %+v", q.RoutePlan)
	}

	first, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("encode quote: %v", err)
	}
	var again QuoteResponse
	if err := json.Unmarshal(first, &again); err != nil {
		t.Fatalf("decode re-encoded quote: %v", err)
	}
	second, err := json.Marshal(again)
	if err != nil {
		t.Fatalf("encode again: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("encoding not stable:\n%s\n%s", first, second)
	}

	var generic map[string]any
	if err := json.Unmarshal(first, &generic); err != nil {
		t.Fatalf("decode generic: %v", err)
	}
	if generic["inAmount"] != "10000000" || generic["priceImpactPct"] != "0.0001" {
		t.Fatalf("amounts must stay strings on the wire: %v", generic)
	}
}

func TestQuoteResponseRejectsBadAmount(t *testing.T) {
	body := []byte(`{"inputMint":"` + solMint + `","inAmount":"ten","outputMint":"` + usdcMint + `"}`)
	var q QuoteResponse
	err := json.Unmarshal(body, &q)

	var fieldErr *codec.FieldParseError
	if !errors.As(err, &fieldErr) || fieldErr.Text != "ten" {
		t.Fatalf("expected FieldParseError for ten, got %v", err)
	}
}

func TestQuoteResponseRejectsUnknownSwapMode(t *testing.T) {
	body := strings.Replace(quoteFixture, `"swapMode": "ExactIn"`, `"swapMode": "Sideways"`, 1)
	var q QuoteResponse
	err := json.Unmarshal([]byte(body), &q)
	if err == nil || !strings.Contains(err.Error(), "swapMode") {
		t.Fatalf("expected swapMode rejection, got %v", err)
	}

	body = strings.Replace(quoteFixture, `"swapMode": "ExactIn"`, `"swapMode": "ExactOut"`, 1)
	if err := json.Unmarshal([]byte(body), &q); err != nil || q.SwapMode != SwapModeExactOut {
		t.Fatalf("expected ExactOut, got %q %v", q.SwapMode, err)
	}
}

func TestQuoteRequestValuesOmitUnset(t *testing.T) {
	req := &QuoteRequest{
		InputMint:   mustKey(solMint),
		OutputMint:  mustKey(usdcMint),
		Amount:      1,
		SlippageBps: 10,
	}
	v, err := req.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if v.Get("inputMint") != solMint || v.Get("amount") != "1" || v.Get("slippageBps") != "10" {
		t.Fatalf("unexpected query %s", v.Encode())
	}
	if v.Has("onlyDirectRoutes") || v.Has("dexes") {
		t.Fatalf("unset fields leaked into query %s", v.Encode())
	}
}

func TestQuoteRequestArgCollision(t *testing.T) {
	req := &QuoteRequest{
		InputMint:  mustKey(solMint),
		OutputMint: mustKey(usdcMint),
		Amount:     1,
		QuoteArgs:  map[string]string{"amount": "2"},
	}
	_, err := req.Values()
	var collision *ArgCollisionError
	if !errors.As(err, &collision) || collision.Key != "amount" {
		t.Fatalf("expected collision on amount, got %v", err)
	}
}
