package core_test

import (
	"errors"
	"testing"

	"door-quoter/internal/core"
	"door-quoter/internal/pricing"
)

func TestDecodeItems_RoundTrip(t *testing.T) {
	items := []core.QuoteItem{newTestItem()}
	data, err := core.EncodeItems(items)
	if err != nil {
		t.Fatalf("EncodeItems failed: %v", err)
	}

	decoded, err := core.DecodeItems(data)
	if err != nil {
		t.Fatalf("DecodeItems failed: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Product.FamilyCode != "bifold" {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}

func TestDecodeItems_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"not JSON", "{nope"},
		{"wrong shape", `{"items": []}`},
		{"unknown field", `[{"product":{"family_code":"bifold"},"quantity":1,"surprise":true}]`},
		{"missing family", `[{"product":{"family_code":""},"quantity":1}]`},
		{"zero quantity", `[{"product":{"family_code":"bifold"},"quantity":0}]`},
		{"negative width", `[{"product":{"family_code":"bifold","width_in":-4},"quantity":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.DecodeItems([]byte(tt.doc))
			if !errors.Is(err, core.ErrMalformedDocument) {
				t.Errorf("want ErrMalformedDocument, got %v", err)
			}
		})
	}
}

func TestDecodeDiscounts(t *testing.T) {
	got, err := core.DecodeDiscounts([]byte(`[{"type":"percent","value":"10"},{"type":"amount","value":"250"}]`))
	if err != nil {
		t.Fatalf("DecodeDiscounts failed: %v", err)
	}
	if len(got) != 2 || got[0].Type != pricing.DiscountPercent {
		t.Errorf("unexpected discounts: %+v", got)
	}

	if _, err := core.DecodeDiscounts([]byte(`[{"type":"mystery","value":"10"}]`)); !errors.Is(err, core.ErrMalformedDocument) {
		t.Errorf("unknown type must be malformed, got %v", err)
	}

	// Empty column means no discounts, not an error.
	if got, err := core.DecodeDiscounts(nil); err != nil || len(got) != 0 {
		t.Errorf("nil document: got (%v, %v)", got, err)
	}
}
