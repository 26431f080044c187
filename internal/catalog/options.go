package catalog

import "github.com/shopspring/decimal"

// GlazingOption is a glass package. AdderPerPanel is charged once per panel.
type GlazingOption struct {
	Code          string          `json:"code"`
	PaneCount     int             `json:"pane_count"`
	Tint          string          `json:"tint"`
	AdderPerPanel decimal.Decimal `json:"adder_per_panel"`
}

// HardwareFinish is a handle/track finish charged once per item.
type HardwareFinish struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Adder decimal.Decimal `json:"adder"`
}

// ColorOption is a frame color. Non-standard colors carry a per-item upcharge.
type ColorOption struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Adder decimal.Decimal `json:"adder"`
}

var glazingOptions = []GlazingOption{
	{Code: "double_clear", PaneCount: 2, Tint: "clear", AdderPerPanel: decimal.Zero},
	{Code: "double_lowe", PaneCount: 2, Tint: "low-e", AdderPerPanel: decimal.NewFromInt(45)},
	{Code: "double_gray", PaneCount: 2, Tint: "gray", AdderPerPanel: decimal.NewFromInt(60)},
	{Code: "triple_clear", PaneCount: 3, Tint: "clear", AdderPerPanel: decimal.NewFromInt(95)},
	{Code: "triple_lowe", PaneCount: 3, Tint: "low-e", AdderPerPanel: decimal.NewFromInt(130)},
}

var hardwareFinishes = []HardwareFinish{
	{Code: "black", Name: "Matte Black", Adder: decimal.Zero},
	{Code: "brushed_nickel", Name: "Brushed Nickel", Adder: decimal.NewFromInt(85)},
	{Code: "bronze", Name: "Oil-Rubbed Bronze", Adder: decimal.NewFromInt(110)},
	{Code: "chrome", Name: "Polished Chrome", Adder: decimal.NewFromInt(95)},
}

var colorOptions = []ColorOption{
	{Code: "white", Name: "White", Adder: decimal.Zero},
	{Code: "black", Name: "Black", Adder: decimal.Zero},
	{Code: "bronze", Name: "Bronze", Adder: decimal.NewFromInt(140)},
	{Code: "custom_ral", Name: "Custom RAL", Adder: decimal.NewFromInt(380)},
}

// Rendered product images served to the configurator, keyed by family code.
var assetURLs = map[string]string{
	"bifold":     "https://assets.door-quoter.example/products/bifold.png",
	"multislide": "https://assets.door-quoter.example/products/multislide.png",
	"windowwall": "https://assets.door-quoter.example/products/windowwall.png",
}

// GlazingOptions returns all glass packages.
func GlazingOptions() []GlazingOption {
	out := make([]GlazingOption, len(glazingOptions))
	copy(out, glazingOptions)
	return out
}

// GlazingByCode looks up a glass package by code.
func GlazingByCode(code string) (GlazingOption, bool) {
	for _, g := range glazingOptions {
		if g.Code == code {
			return g, true
		}
	}
	return GlazingOption{}, false
}

// GlazingBySelection matches a pane count and tint to a glass package.
func GlazingBySelection(paneCount int, tint string) (GlazingOption, bool) {
	for _, g := range glazingOptions {
		if g.PaneCount == paneCount && g.Tint == tint {
			return g, true
		}
	}
	return GlazingOption{}, false
}

// HardwareFinishes returns all hardware finishes.
func HardwareFinishes() []HardwareFinish {
	out := make([]HardwareFinish, len(hardwareFinishes))
	copy(out, hardwareFinishes)
	return out
}

// HardwareByCode looks up a hardware finish by code.
func HardwareByCode(code string) (HardwareFinish, bool) {
	for _, h := range hardwareFinishes {
		if h.Code == code {
			return h, true
		}
	}
	return HardwareFinish{}, false
}

// ColorOptions returns all frame colors.
func ColorOptions() []ColorOption {
	out := make([]ColorOption, len(colorOptions))
	copy(out, colorOptions)
	return out
}

// ColorByCode looks up a frame color by code.
func ColorByCode(code string) (ColorOption, bool) {
	for _, c := range colorOptions {
		if c.Code == code {
			return c, true
		}
	}
	return ColorOption{}, false
}

// AssetURL returns the rendered product image for a family, or empty string.
func AssetURL(familyCode string) string {
	return assetURLs[familyCode]
}
