package core_test

import (
	"testing"

	"door-quoter/internal/core"
)

func TestQuoteDraft_Reproduction(t *testing.T) {
	// Draft with blank option codes — Normalize fills defaults, then validates.
	d := core.QuoteDraft{
		Items: []core.DraftItem{
			{FamilyCode: " Bifold ", WidthIn: 144, HeightIn: 96},
		},
	}

	d.Normalize()
	if d.Items[0].FamilyCode != "bifold" {
		t.Errorf("family not normalized: %q", d.Items[0].FamilyCode)
	}
	if d.Items[0].Quantity != 1 {
		t.Errorf("quantity should default to 1, got %d", d.Items[0].Quantity)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("normalized draft should validate, got %v", err)
	}
}

func TestQuoteDraft_NormalizationAndValidation(t *testing.T) {
	tests := []struct {
		name      string
		items     []core.DraftItem
		expectErr bool
	}{
		{
			name: "happy path",
			items: []core.DraftItem{
				{FamilyCode: "bifold", WidthIn: 144, HeightIn: 96, GlazingCode: "double_lowe", HardwareFinish: "bronze", ColorCode: "black", Quantity: 2},
			},
			expectErr: false,
		},
		{
			name:      "no items",
			items:     nil,
			expectErr: true,
		},
		{
			name: "unknown family",
			items: []core.DraftItem{
				{FamilyCode: "frenchdoor", WidthIn: 144, HeightIn: 96},
			},
			expectErr: true,
		},
		{
			name: "width outside envelope",
			items: []core.DraftItem{
				{FamilyCode: "bifold", WidthIn: 400, HeightIn: 96},
			},
			expectErr: true,
		},
		{
			name: "unknown glazing",
			items: []core.DraftItem{
				{FamilyCode: "bifold", WidthIn: 144, HeightIn: 96, GlazingCode: "quadruple_mirror"},
			},
			expectErr: true,
		},
		{
			name: "panel count that does not fit",
			items: []core.DraftItem{
				{FamilyCode: "bifold", WidthIn: 144, HeightIn: 96, PanelCount: 2},
			},
			expectErr: true,
		},
		{
			name: "panel count that fits",
			items: []core.DraftItem{
				{FamilyCode: "bifold", WidthIn: 144, HeightIn: 96, PanelCount: 4},
			},
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := core.QuoteDraft{Items: tt.items}
			d.Normalize()
			err := d.Validate()

			if tt.expectErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDraftItem_BuilderItem(t *testing.T) {
	item := core.DraftItem{
		FamilyCode:     "bifold",
		WidthIn:        144,
		HeightIn:       96,
		GlazingCode:    "triple_lowe",
		HardwareFinish: "chrome",
		ColorCode:      "bronze",
		Quantity:       2,
	}
	qi := item.BuilderItem()
	if qi.Glazing.PaneCount != 3 || qi.Glazing.Tint != "low-e" {
		t.Errorf("glazing not resolved: %+v", qi.Glazing)
	}
	if qi.Colors.Exterior != "bronze" || !qi.Colors.IsSame {
		t.Errorf("colors not mapped: %+v", qi.Colors)
	}
	if qi.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", qi.Quantity)
	}
}
