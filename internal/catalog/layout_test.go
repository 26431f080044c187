package catalog_test

import (
	"math"
	"testing"

	"door-quoter/internal/catalog"
)

func bifold(t *testing.T) catalog.Family {
	t.Helper()
	f, ok := catalog.FamilyByCode("bifold")
	if !ok {
		t.Fatal("bifold family missing from catalog")
	}
	return f
}

func TestValidPanelOptions_WorkedExample(t *testing.T) {
	// 144" opening, 5" structural gap → usable 139".
	// 139/3 = 46.33 and 139/4 = 34.75 are in [28,48]; 139/2 = 69.5 and
	// 139/5 = 27.8 are not.
	f := bifold(t)
	opts := catalog.OptionsForOpening(144, f)

	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d: %+v", len(opts), opts)
	}
	if opts[0].Count != 3 || opts[1].Count != 4 {
		t.Errorf("expected counts [3 4], got [%d %d]", opts[0].Count, opts[1].Count)
	}
	if math.Abs(opts[0].PerPanelWidthIn-139.0/3.0) > 1e-9 {
		t.Errorf("per-panel width for n=3: got %v", opts[0].PerPanelWidthIn)
	}
	if catalog.DisplayWidth(opts[0].PerPanelWidthIn) != 46.3 {
		t.Errorf("display width for n=3: got %v, want 46.3", catalog.DisplayWidth(opts[0].PerPanelWidthIn))
	}
}

func TestValidPanelOptions_Bounds(t *testing.T) {
	f := bifold(t)

	tests := []struct {
		name        string
		usableWidth float64
		wantCounts  []int
	}{
		{"too narrow for any count", 40, nil},
		{"exactly min panel width at n=2", 56, []int{2}},
		{"wide opening, many counts", 240, []int{5, 6, 7, 8}},
		{"zero width", 0, nil},
		{"negative width", -10, nil},
		{"NaN width", math.NaN(), nil},
		{"infinite width", math.Inf(1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := catalog.ValidPanelOptions(tt.usableWidth, f)
			if len(opts) != len(tt.wantCounts) {
				t.Fatalf("got %d options %+v, want counts %v", len(opts), opts, tt.wantCounts)
			}
			for i, o := range opts {
				if o.Count != tt.wantCounts[i] {
					t.Errorf("option %d: got count %d, want %d", i, o.Count, tt.wantCounts[i])
				}
			}
		})
	}
}

func TestValidPanelOptions_NoOtherCounts(t *testing.T) {
	// Every returned count satisfies the bound, and every in-bound count is
	// returned, across the full configurator width range.
	f := bifold(t)
	for width := 24.0; width <= 240.0; width += 0.5 {
		usable := catalog.UsableWidth(width, f)
		opts := catalog.ValidPanelOptions(usable, f)
		valid := make(map[int]bool)
		for _, o := range opts {
			per := usable / float64(o.Count)
			if per < f.MinPanelWidthIn || per > f.MaxPanelWidthIn {
				t.Fatalf("width %v: count %d gives out-of-range per-panel %v", width, o.Count, per)
			}
			valid[o.Count] = true
		}
		for n := 2; n <= f.MaxPanelCount; n++ {
			per := usable / float64(n)
			inRange := per >= f.MinPanelWidthIn && per <= f.MaxPanelWidthIn
			if inRange != valid[n] {
				t.Fatalf("width %v: count %d in-range=%v but returned=%v", width, n, inRange, valid[n])
			}
		}
	}
}

func TestResolvePanelCount_TieBreak(t *testing.T) {
	opts := []catalog.PanelOption{{Count: 3, PerPanelWidthIn: 46.33}, {Count: 4, PerPanelWidthIn: 34.75}}

	if n, ok := catalog.ResolvePanelCount(4, opts); !ok || n != 4 {
		t.Errorf("previous still valid: got (%d, %v), want (4, true)", n, ok)
	}
	if n, ok := catalog.ResolvePanelCount(2, opts); !ok || n != 3 {
		t.Errorf("previous invalid: got (%d, %v), want (3, true)", n, ok)
	}
	if n, ok := catalog.ResolvePanelCount(0, opts); !ok || n != 3 {
		t.Errorf("no previous: got (%d, %v), want (3, true)", n, ok)
	}
	if _, ok := catalog.ResolvePanelCount(3, nil); ok {
		t.Error("empty options must resolve to (_, false)")
	}
}

func TestDefaultLayout(t *testing.T) {
	l, ok := catalog.DefaultLayout("bifold", 4)
	if !ok {
		t.Fatal("bifold 4-panel should have layouts")
	}
	if l.Code != "bf_4p_4L" {
		t.Errorf("default layout should be the first table entry, got %s", l.Code)
	}

	// multislide has no 7-panel configuration; this is "no layouts available",
	// not a panic or error.
	if _, ok := catalog.DefaultLayout("multislide", 7); ok {
		t.Error("multislide 7-panel should have no layouts")
	}
	if _, ok := catalog.DefaultLayout("unknown", 2); ok {
		t.Error("unknown family should have no layouts")
	}
}

func TestValidLayoutCode(t *testing.T) {
	if !catalog.ValidLayoutCode("bifold", 4, "bf_4p_2L2R") {
		t.Error("bf_4p_2L2R should be valid for bifold 4-panel")
	}
	if catalog.ValidLayoutCode("bifold", 3, "bf_4p_2L2R") {
		t.Error("layout codes are scoped to their panel count")
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{34.75, 34.8},
		{46.333333, 46.3},
		{28.0, 28.0},
		{27.849, 27.8},
	}
	for _, tt := range tests {
		if got := catalog.DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
