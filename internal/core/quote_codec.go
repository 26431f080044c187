package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"door-quoter/internal/pricing"
)

// ErrMalformedDocument marks a persisted quote document that failed schema
// validation on read. Callers log it as a distinct outcome; it is never
// silently collapsed into an empty quote.
var ErrMalformedDocument = errors.New("malformed quote document")

// EncodeItems serializes quote items for the JSON document column.
func EncodeItems(items []QuoteItem) ([]byte, error) {
	if items == nil {
		items = []QuoteItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode quote items: %w", err)
	}
	return data, nil
}

// DecodeItems parses and validates the items document. Validation happens at
// this deserialization boundary so the rest of the code handles only typed,
// structurally sound items.
func DecodeItems(data []byte) ([]QuoteItem, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty items document", ErrMalformedDocument)
	}

	var items []QuoteItem
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	for i, item := range items {
		if err := validateItem(item); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedDocument, i, err)
		}
	}
	return items, nil
}

func validateItem(item QuoteItem) error {
	if item.Product.FamilyCode == "" {
		return errors.New("missing family code")
	}
	if item.Quantity < 1 {
		return fmt.Errorf("quantity %d out of range", item.Quantity)
	}
	if !isFinite(item.Product.WidthIn) || item.Product.WidthIn < 0 {
		return fmt.Errorf("width %v out of range", item.Product.WidthIn)
	}
	if !isFinite(item.Product.HeightIn) || item.Product.HeightIn < 0 {
		return fmt.Errorf("height %v out of range", item.Product.HeightIn)
	}
	if item.Product.PanelCount < 0 {
		return fmt.Errorf("panel count %d out of range", item.Product.PanelCount)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EncodeDiscounts serializes the discount list for its document column.
func EncodeDiscounts(discounts []pricing.Discount) ([]byte, error) {
	if discounts == nil {
		discounts = []pricing.Discount{}
	}
	data, err := json.Marshal(discounts)
	if err != nil {
		return nil, fmt.Errorf("encode discounts: %w", err)
	}
	return data, nil
}

// DecodeDiscounts parses and validates the discounts document.
func DecodeDiscounts(data []byte) ([]pricing.Discount, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []pricing.Discount{}, nil
	}
	var discounts []pricing.Discount
	if err := json.Unmarshal(data, &discounts); err != nil {
		return nil, fmt.Errorf("%w: discounts: %v", ErrMalformedDocument, err)
	}
	for i, d := range discounts {
		if d.Type != pricing.DiscountAmount && d.Type != pricing.DiscountPercent {
			return nil, fmt.Errorf("%w: discount %d has unknown type %q", ErrMalformedDocument, i, d.Type)
		}
	}
	return discounts, nil
}
