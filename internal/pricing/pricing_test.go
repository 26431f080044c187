package pricing_test

import (
	"math"
	"math/rand"
	"testing"

	"door-quoter/internal/pricing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func sampleItem() pricing.ItemInput {
	return pricing.ItemInput{
		BaseCostPerSqFt:      d(38),
		PerPanelCost:         d(120),
		WidthIn:              144,
		HeightIn:             96,
		PanelCount:           4,
		GlazingAdderPerPanel: d(45),
		UpgradeAdders:        []decimal.Decimal{d(85), d(140)},
		Quantity:             2,
	}
}

func TestComputeItem_WorkedExample(t *testing.T) {
	// 144×96 → 96 sq ft; base 96×38 = 3648; panels 4×120 = 480;
	// glazing 4×45 = 180; upgrades 85+140 = 225; unit 4533; ×2 = 9066.
	b := pricing.ComputeItem(sampleItem())

	if !b.BaseCost.Equal(d(3648)) {
		t.Errorf("BaseCost = %s, want 3648", b.BaseCost)
	}
	if !b.SizeAndPanelCost.Equal(d(480)) {
		t.Errorf("SizeAndPanelCost = %s, want 480", b.SizeAndPanelCost)
	}
	if !b.GlazingCost.Equal(d(180)) {
		t.Errorf("GlazingCost = %s, want 180", b.GlazingCost)
	}
	if !b.TotalUpgrades.Equal(d(225)) {
		t.Errorf("TotalUpgrades = %s, want 225", b.TotalUpgrades)
	}
	if !b.UnitPrice.Equal(d(4533)) {
		t.Errorf("UnitPrice = %s, want 4533", b.UnitPrice)
	}
	if !b.ItemSubtotal.Equal(d(9066)) {
		t.Errorf("ItemSubtotal = %s, want 9066", b.ItemSubtotal)
	}
	if !b.ItemTotal.Equal(b.ItemSubtotal) {
		t.Errorf("no install: ItemTotal %s should equal ItemSubtotal %s", b.ItemTotal, b.ItemSubtotal)
	}
}

func TestComputeItem_Idempotent(t *testing.T) {
	in := sampleItem()
	first := pricing.ComputeItem(in)
	second := pricing.ComputeItem(in)
	if !first.ItemTotal.Equal(second.ItemTotal) || !first.UnitPrice.Equal(second.UnitPrice) {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
}

func TestComputeItem_NonFiniteDimensionsDegradeToZero(t *testing.T) {
	tests := []struct {
		name  string
		width float64
	}{
		{"NaN width", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleItem()
			in.WidthIn = tt.width
			b := pricing.ComputeItem(in)
			if !b.BaseCost.IsZero() {
				t.Errorf("BaseCost = %s, want 0 for non-finite width", b.BaseCost)
			}
			// Panel-based terms are unaffected; the total stays finite.
			want := d(480 + 180 + 225).Mul(d(2))
			if !b.ItemTotal.Equal(want) {
				t.Errorf("ItemTotal = %s, want %s", b.ItemTotal, want)
			}
		})
	}
}

func TestComputeQuote_OrderIndependent(t *testing.T) {
	items := make([]pricing.Breakdown, 8)
	rng := rand.New(rand.NewSource(7))
	for i := range items {
		in := sampleItem()
		in.WidthIn = 60 + rng.Float64()*180
		in.HeightIn = 48 + rng.Float64()*72
		in.Quantity = 1 + rng.Intn(4)
		items[i] = pricing.ComputeItem(in)
	}

	base := pricing.ComputeQuote(pricing.QuoteInput{Items: items, TaxRate: 0.0825})

	tolerance := d(0.000001)
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]pricing.Breakdown, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := pricing.ComputeQuote(pricing.QuoteInput{Items: shuffled, TaxRate: 0.0825})
		if got.Subtotal.Sub(base.Subtotal).Abs().GreaterThan(tolerance) {
			t.Fatalf("permutation changed subtotal: %s vs %s", got.Subtotal, base.Subtotal)
		}
		if got.GrandTotal.Sub(base.GrandTotal).Abs().GreaterThan(tolerance) {
			t.Fatalf("permutation changed grand total: %s vs %s", got.GrandTotal, base.GrandTotal)
		}
	}
}

func TestComputeQuote_TaxAndOrder(t *testing.T) {
	// subtotal 1000, install 200, delivery 100 → base 1300; tax 8% = 104;
	// grand total 1404.
	totals := pricing.ComputeQuote(pricing.QuoteInput{
		Items:            []pricing.Breakdown{{ItemTotal: d(1000)}},
		InstallationCost: d(200),
		DeliveryCost:     d(100),
		TaxRate:          0.08,
	})
	if !totals.Tax.Equal(d(104)) {
		t.Errorf("Tax = %s, want 104", totals.Tax)
	}
	if !totals.GrandTotal.Equal(d(1404)) {
		t.Errorf("GrandTotal = %s, want 1404", totals.GrandTotal)
	}
}

func TestComputeQuote_NonFiniteTaxRate(t *testing.T) {
	totals := pricing.ComputeQuote(pricing.QuoteInput{
		Items:   []pricing.Breakdown{{ItemTotal: d(1000)}},
		TaxRate: math.NaN(),
	})
	if !totals.Tax.IsZero() {
		t.Errorf("Tax = %s, want 0 for NaN rate", totals.Tax)
	}
	if !totals.GrandTotal.Equal(d(1000)) {
		t.Errorf("GrandTotal = %s, want 1000", totals.GrandTotal)
	}
}

func TestDiscountTotal_SummedNotCompounded(t *testing.T) {
	base := d(1000)
	discounts := []pricing.Discount{
		{Type: pricing.DiscountPercent, Value: d(10)},
		{Type: pricing.DiscountPercent, Value: d(10)},
	}
	// Two 10% discounts are 20% of base = 200, never a compounded 190.
	if got := pricing.DiscountTotal(base, discounts); !got.Equal(d(200)) {
		t.Errorf("DiscountTotal = %s, want 200", got)
	}
}

func TestDiscountTotal_MixedTypes(t *testing.T) {
	base := d(2000)
	discounts := []pricing.Discount{
		{Type: pricing.DiscountPercent, Value: d(5)},  // 100
		{Type: pricing.DiscountAmount, Value: d(250)}, // 250
		{Type: pricing.DiscountAmount, Value: d(-50)}, // ignored
		{Type: "bogus", Value: d(999)},                // ignored
	}
	if got := pricing.DiscountTotal(base, discounts); !got.Equal(d(350)) {
		t.Errorf("DiscountTotal = %s, want 350", got)
	}
}

func TestComputeQuote_DiscountAppliedPreTaxBaseOnce(t *testing.T) {
	// base = 1000 + 200 + 100 = 1300; two 10% percent discounts = 260;
	// tax 10% of base = 130; grand = 1300 + 130 − 260 = 1170.
	totals := pricing.ComputeQuote(pricing.QuoteInput{
		Items:            []pricing.Breakdown{{ItemTotal: d(1000)}},
		InstallationCost: d(200),
		DeliveryCost:     d(100),
		TaxRate:          0.10,
		Discounts: []pricing.Discount{
			{Type: pricing.DiscountPercent, Value: d(10)},
			{Type: pricing.DiscountPercent, Value: d(10)},
		},
	})
	if !totals.DiscountTotal.Equal(d(260)) {
		t.Errorf("DiscountTotal = %s, want 260", totals.DiscountTotal)
	}
	if !totals.GrandTotal.Equal(d(1170)) {
		t.Errorf("GrandTotal = %s, want 1170", totals.GrandTotal)
	}
}

func TestRoundMoney(t *testing.T) {
	if got := pricing.RoundMoney(d(12.3456)); !got.Equal(d(12.35)) {
		t.Errorf("RoundMoney = %s, want 12.35", got)
	}
}
