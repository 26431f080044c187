package catalog

import "github.com/shopspring/decimal"

// Family describes one product family (a door or window system) and the
// dimensional envelope a configuration must fit inside.
type Family struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	SystemType      string          `json:"system_type"` // "door" or "window"
	BaseCostPerSqFt decimal.Decimal `json:"base_cost_per_sqft"`
	PerPanelCost    decimal.Decimal `json:"per_panel_cost"`
	MinWidthIn      float64         `json:"min_width_in"`
	MaxWidthIn      float64         `json:"max_width_in"`
	MinHeightIn     float64         `json:"min_height_in"`
	MaxHeightIn     float64         `json:"max_height_in"`
	MinPanelWidthIn float64         `json:"min_panel_width_in"`
	MaxPanelWidthIn float64         `json:"max_panel_width_in"`
	MaxPanelCount   int             `json:"max_panel_count"`
	StructuralGapIn float64         `json:"structural_gap_in"`
}

var families = []Family{
	{
		Code:            "bifold",
		Name:            "Bifold Door System",
		SystemType:      "door",
		BaseCostPerSqFt: decimal.NewFromInt(38),
		PerPanelCost:    decimal.NewFromInt(120),
		MinWidthIn:      24,
		MaxWidthIn:      240,
		MinHeightIn:     48,
		MaxHeightIn:     120,
		MinPanelWidthIn: 28,
		MaxPanelWidthIn: 48,
		MaxPanelCount:   8,
		StructuralGapIn: 5,
	},
	{
		Code:            "multislide",
		Name:            "Multi-Slide Door System",
		SystemType:      "door",
		BaseCostPerSqFt: decimal.NewFromInt(42),
		PerPanelCost:    decimal.NewFromInt(150),
		MinWidthIn:      48,
		MaxWidthIn:      240,
		MinHeightIn:     48,
		MaxHeightIn:     120,
		MinPanelWidthIn: 28,
		MaxPanelWidthIn: 48,
		MaxPanelCount:   8,
		StructuralGapIn: 5,
	},
	{
		Code:            "windowwall",
		Name:            "Window Wall System",
		SystemType:      "window",
		BaseCostPerSqFt: decimal.NewFromInt(29),
		PerPanelCost:    decimal.NewFromInt(80),
		MinWidthIn:      24,
		MaxWidthIn:      192,
		MinHeightIn:     24,
		MaxHeightIn:     96,
		MinPanelWidthIn: 20,
		MaxPanelWidthIn: 40,
		MaxPanelCount:   6,
		StructuralGapIn: 3,
	},
}

// Families returns all product families in catalog order.
func Families() []Family {
	out := make([]Family, len(families))
	copy(out, families)
	return out
}

// FamilyByCode looks up a family. The second return is false for unknown codes.
func FamilyByCode(code string) (Family, bool) {
	for _, f := range families {
		if f.Code == code {
			return f, true
		}
	}
	return Family{}, false
}

// DimensionsInRange reports whether an opening fits the family's envelope.
func (f Family) DimensionsInRange(widthIn, heightIn float64) bool {
	return widthIn >= f.MinWidthIn && widthIn <= f.MaxWidthIn &&
		heightIn >= f.MinHeightIn && heightIn <= f.MaxHeightIn
}
