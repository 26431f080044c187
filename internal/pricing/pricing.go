// Package pricing computes item and quote totals from a fixed set of additive
// cost components. All functions are pure: same inputs, same outputs, no
// hidden state, safe to re-run on every configurator change.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// ItemInput carries everything needed to price one configured item.
// Dimensional inputs are float64 and pass a finite guard before use; a NaN or
// infinite value degrades that term to zero instead of poisoning the total.
type ItemInput struct {
	BaseCostPerSqFt      decimal.Decimal
	PerPanelCost         decimal.Decimal
	WidthIn              float64
	HeightIn             float64
	PanelCount           int
	GlazingAdderPerPanel decimal.Decimal
	UpgradeAdders        []decimal.Decimal // hardware finish, color upcharge, etc.
	InstallationCost     decimal.Decimal   // per-item install estimate, may be zero
	Quantity             int
}

// Breakdown is the derived price of one item. It has no independent identity:
// it is always recomputed from the item's configuration before being trusted.
type Breakdown struct {
	BaseCost         decimal.Decimal `json:"base_cost"`
	SizeAndPanelCost decimal.Decimal `json:"size_and_panel_cost"`
	TotalUpgrades    decimal.Decimal `json:"total_upgrades"`
	GlazingCost      decimal.Decimal `json:"glazing_cost"`
	InstallationCost decimal.Decimal `json:"installation_cost"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ItemSubtotal     decimal.Decimal `json:"item_subtotal"`
	ItemTotal        decimal.Decimal `json:"item_total"`
}

// QuoteInput aggregates item breakdowns with quote-level charges.
type QuoteInput struct {
	Items            []Breakdown
	InstallationCost decimal.Decimal
	DeliveryCost     decimal.Decimal
	TaxRate          float64 // e.g. 0.0825; finite-guarded
	Discounts        []Discount
}

// Totals is the quote-level roll-up.
type Totals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	InstallationCost decimal.Decimal `json:"installation_cost"`
	DeliveryCost     decimal.Decimal `json:"delivery_cost"`
	DiscountTotal    decimal.Decimal `json:"discount_total"`
	Tax              decimal.Decimal `json:"tax"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// finiteOrZero guards every float input: NaN and ±Inf degrade to 0.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeItem prices a single item. Computation order is fixed:
// sqFt → baseCost → sizeAndPanelCost → glazingCost → upgrades → unitPrice →
// itemSubtotal (×qty) → itemTotal (+install). No intermediate rounding; use
// RoundMoney only at the display/persistence edge.
func ComputeItem(in ItemInput) Breakdown {
	w := finiteOrZero(in.WidthIn)
	h := finiteOrZero(in.HeightIn)
	sqFt := (w * h) / 144.0

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	panels := in.PanelCount
	if panels < 0 {
		panels = 0
	}

	baseCost := in.BaseCostPerSqFt.Mul(decimal.NewFromFloat(sqFt))
	sizeAndPanel := in.PerPanelCost.Mul(decimal.NewFromInt(int64(panels)))
	glazing := in.GlazingAdderPerPanel.Mul(decimal.NewFromInt(int64(panels)))

	upgrades := decimal.Zero
	for _, a := range in.UpgradeAdders {
		upgrades = upgrades.Add(a)
	}

	unitPrice := baseCost.Add(sizeAndPanel).Add(glazing).Add(upgrades)
	itemSubtotal := unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	itemTotal := itemSubtotal.Add(in.InstallationCost)

	return Breakdown{
		BaseCost:         baseCost,
		SizeAndPanelCost: sizeAndPanel,
		TotalUpgrades:    upgrades,
		GlazingCost:      glazing,
		InstallationCost: in.InstallationCost,
		UnitPrice:        unitPrice,
		ItemSubtotal:     itemSubtotal,
		ItemTotal:        itemTotal,
	}
}

// ComputeQuote rolls item breakdowns up to quote totals. Fixed order:
//  1. subtotal = Σ itemTotal
//  2. discount total over base = subtotal + installation + delivery
//  3. tax = base × taxRate (discounts do not reduce the taxable base)
//  4. grandTotal = base + tax − discountTotal
//
// Addition is commutative over decimals, so item permutation cannot change
// the result.
func ComputeQuote(in QuoteInput) Totals {
	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.ItemTotal)
	}

	base := subtotal.Add(in.InstallationCost).Add(in.DeliveryCost)
	discountTotal := DiscountTotal(base, in.Discounts)

	rate := decimal.NewFromFloat(finiteOrZero(in.TaxRate))
	tax := base.Mul(rate)

	return Totals{
		Subtotal:         subtotal,
		InstallationCost: in.InstallationCost,
		DeliveryCost:     in.DeliveryCost,
		DiscountTotal:    discountTotal,
		Tax:              tax,
		GrandTotal:       base.Add(tax).Sub(discountTotal),
	}
}

// RoundMoney rounds a currency value to 2 decimals. Only call at the point of
// display or persistence; accumulation always runs unrounded.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
