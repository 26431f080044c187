package catalog

import "math"

// PanelOption is one valid panel count for an opening, with the resulting
// per-panel width. Derived, never persisted.
type PanelOption struct {
	Count           int     `json:"count"`
	PerPanelWidthIn float64 `json:"per_panel_width_in"`
}

// Layout identifies a panel arrangement (stack direction, operating panel).
type Layout struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Layout tables keyed by family code, then panel count. The first entry per
// count is the default. Counts without an entry have no selectable layouts.
var layoutsByFamily = map[string]map[int][]Layout{
	"bifold": {
		2: {{Code: "bf_2p_2L", Name: "2 panels stacking left"}, {Code: "bf_2p_2R", Name: "2 panels stacking right"}},
		3: {{Code: "bf_3p_3L", Name: "3 panels stacking left"}, {Code: "bf_3p_3R", Name: "3 panels stacking right"}, {Code: "bf_3p_2L1R", Name: "2 left, 1 right"}},
		4: {{Code: "bf_4p_4L", Name: "4 panels stacking left"}, {Code: "bf_4p_4R", Name: "4 panels stacking right"}, {Code: "bf_4p_3L1R", Name: "3 left, 1 right"}, {Code: "bf_4p_2L2R", Name: "2 left, 2 right"}},
		5: {{Code: "bf_5p_5L", Name: "5 panels stacking left"}, {Code: "bf_5p_5R", Name: "5 panels stacking right"}, {Code: "bf_5p_3L2R", Name: "3 left, 2 right"}},
		6: {{Code: "bf_6p_6L", Name: "6 panels stacking left"}, {Code: "bf_6p_6R", Name: "6 panels stacking right"}, {Code: "bf_6p_3L3R", Name: "3 left, 3 right"}},
		7: {{Code: "bf_7p_7L", Name: "7 panels stacking left"}, {Code: "bf_7p_4L3R", Name: "4 left, 3 right"}},
		8: {{Code: "bf_8p_8L", Name: "8 panels stacking left"}, {Code: "bf_8p_4L4R", Name: "4 left, 4 right"}},
	},
	"multislide": {
		2: {{Code: "ms_2p_2L", Name: "2 panels sliding left"}, {Code: "ms_2p_2R", Name: "2 panels sliding right"}},
		3: {{Code: "ms_3p_3L", Name: "3 panels sliding left"}, {Code: "ms_3p_3R", Name: "3 panels sliding right"}},
		4: {{Code: "ms_4p_4L", Name: "4 panels sliding left"}, {Code: "ms_4p_4R", Name: "4 panels sliding right"}, {Code: "ms_4p_2L2R", Name: "2 left, 2 right biparting"}},
		5: {{Code: "ms_5p_5L", Name: "5 panels sliding left"}, {Code: "ms_5p_5R", Name: "5 panels sliding right"}},
		6: {{Code: "ms_6p_6L", Name: "6 panels sliding left"}, {Code: "ms_6p_3L3R", Name: "3 left, 3 right biparting"}},
		8: {{Code: "ms_8p_8L", Name: "8 panels sliding left"}, {Code: "ms_8p_4L4R", Name: "4 left, 4 right biparting"}},
	},
	"windowwall": {
		2: {{Code: "ww_2p_fixed", Name: "2 fixed panels"}},
		3: {{Code: "ww_3p_fixed", Name: "3 fixed panels"}},
		4: {{Code: "ww_4p_fixed", Name: "4 fixed panels"}},
		5: {{Code: "ww_5p_fixed", Name: "5 fixed panels"}},
		6: {{Code: "ww_6p_fixed", Name: "6 fixed panels"}},
	},
}

// UsableWidth returns the opening width reduced by the family's structural gap.
func UsableWidth(openingWidthIn float64, f Family) float64 {
	return openingWidthIn - f.StructuralGapIn
}

// ValidPanelOptions enumerates panel counts whose per-panel width falls inside
// the family's range, for a usable (gap-reduced) width. The result is ordered
// ascending by count. An empty result means no configuration fits and is a
// normal outcome, not an error. No rounding is applied during validation.
func ValidPanelOptions(usableWidthIn float64, f Family) []PanelOption {
	if usableWidthIn <= 0 || math.IsNaN(usableWidthIn) || math.IsInf(usableWidthIn, 0) {
		return nil
	}
	var opts []PanelOption
	for n := 2; n <= f.MaxPanelCount; n++ {
		per := usableWidthIn / float64(n)
		if per >= f.MinPanelWidthIn && per <= f.MaxPanelWidthIn {
			opts = append(opts, PanelOption{Count: n, PerPanelWidthIn: per})
		}
	}
	return opts
}

// OptionsForOpening applies the structural gap and enumerates valid counts.
func OptionsForOpening(openingWidthIn float64, f Family) []PanelOption {
	return ValidPanelOptions(UsableWidth(openingWidthIn, f), f)
}

// ResolvePanelCount picks the panel count to use: the previous selection when
// it is still valid, otherwise the smallest valid count. Returns false when
// no option fits.
func ResolvePanelCount(previous int, opts []PanelOption) (int, bool) {
	if len(opts) == 0 {
		return 0, false
	}
	for _, o := range opts {
		if o.Count == previous {
			return previous, true
		}
	}
	return opts[0].Count, true
}

// LayoutsFor returns the selectable layouts for a family and panel count.
// A nil result means no layouts are available for that count.
func LayoutsFor(familyCode string, count int) []Layout {
	byCount, ok := layoutsByFamily[familyCode]
	if !ok {
		return nil
	}
	return byCount[count]
}

// DefaultLayout returns the first layout table entry for the count. The second
// return is false when the table has no entry ("no layouts available").
func DefaultLayout(familyCode string, count int) (Layout, bool) {
	layouts := LayoutsFor(familyCode, count)
	if len(layouts) == 0 {
		return Layout{}, false
	}
	return layouts[0], true
}

// ValidLayoutCode reports whether code is a selectable layout for the count.
func ValidLayoutCode(familyCode string, count int, code string) bool {
	for _, l := range LayoutsFor(familyCode, count) {
		if l.Code == code {
			return true
		}
	}
	return false
}

// DisplayWidth rounds a per-panel width to 0.1 inch for presentation.
// Validation always runs on the unrounded value.
func DisplayWidth(widthIn float64) float64 {
	return math.Round(widthIn*10) / 10
}
