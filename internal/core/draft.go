package core

import (
	"errors"
	"fmt"
	"strings"

	"door-quoter/internal/catalog"
)

// DraftItem is one configured product in an AI-generated quote draft.
type DraftItem struct {
	FamilyCode     string  `json:"family_code" jsonschema_description:"The exact product family code from the provided catalog (e.g. 'bifold', 'multislide', 'windowwall')"`
	WidthIn        float64 `json:"width_in" jsonschema_description:"Overall opening width in inches"`
	HeightIn       float64 `json:"height_in" jsonschema_description:"Overall opening height in inches"`
	PanelCount     int     `json:"panel_count" jsonschema_description:"Requested panel count, or 0 to let the configurator choose"`
	GlazingCode    string  `json:"glazing_code" jsonschema_description:"The exact glass package code from the provided catalog, or empty for the standard package"`
	HardwareFinish string  `json:"hardware_finish" jsonschema_description:"The exact hardware finish code from the provided catalog, or empty for the standard finish"`
	ColorCode      string  `json:"color_code" jsonschema_description:"The exact frame color code from the provided catalog, or empty for white"`
	Quantity       int     `json:"quantity" jsonschema_description:"How many identical units the customer wants (at least 1)"`
}

// QuoteDraft is the AI-generated configuration proposal. It is a suggestion
// for the configurator to load, never persisted directly.
type QuoteDraft struct {
	CustomerName string      `json:"customer_name" jsonschema_description:"The customer's name if mentioned, otherwise empty"`
	Items        []DraftItem `json:"items" jsonschema_description:"One entry per distinct product configuration requested"`
	Confidence   float64     `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning    string      `json:"reasoning" jsonschema_description:"Explanation of how the request maps to this configuration"`
}

// DraftClarification is returned when the request is too ambiguous to draft.
type DraftClarification struct {
	Message string `json:"message" jsonschema_description:"A question asking the customer for the missing details (e.g. 'What is the opening width in inches?')."`
}

// DraftResponse wraps the AI output to handle branching between a usable
// QuoteDraft and a clarification request. Exactly one side is set.
type DraftResponse struct {
	IsClarificationRequest bool                `json:"is_clarification_request" jsonschema_description:"Set to true ONLY if you lack enough information to draft a configuration."`
	Clarification          *DraftClarification `json:"clarification,omitempty" jsonschema_description:"Required if is_clarification_request is true."`
	Draft                  *QuoteDraft         `json:"draft,omitempty" jsonschema_description:"Required if is_clarification_request is false."`
}

// Normalize cleans up common AI output issues before validation.
func (d *QuoteDraft) Normalize() {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	for i := range d.Items {
		item := &d.Items[i]
		item.FamilyCode = strings.ToLower(strings.TrimSpace(item.FamilyCode))
		item.GlazingCode = strings.ToLower(strings.TrimSpace(item.GlazingCode))
		item.HardwareFinish = strings.ToLower(strings.TrimSpace(item.HardwareFinish))
		item.ColorCode = strings.ToLower(strings.TrimSpace(item.ColorCode))
		if item.GlazingCode == "" {
			item.GlazingCode = "double_clear"
		}
		if item.HardwareFinish == "" {
			item.HardwareFinish = "black"
		}
		if item.ColorCode == "" {
			item.ColorCode = "white"
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
	}
}

// Validate checks every draft item against the catalog: known codes,
// dimensions inside the family envelope, and a panel count that actually fits
// the opening when one was requested.
func (d *QuoteDraft) Validate() error {
	if len(d.Items) == 0 {
		return errors.New("draft must contain at least one item")
	}

	for i, item := range d.Items {
		family, ok := catalog.FamilyByCode(item.FamilyCode)
		if !ok {
			return fmt.Errorf("item %d: unknown product family %q", i+1, item.FamilyCode)
		}
		if !family.DimensionsInRange(item.WidthIn, item.HeightIn) {
			return fmt.Errorf("item %d: %gx%g in is outside the %s envelope (%g-%g × %g-%g)",
				i+1, item.WidthIn, item.HeightIn, family.Code,
				family.MinWidthIn, family.MaxWidthIn, family.MinHeightIn, family.MaxHeightIn)
		}
		if _, ok := catalog.GlazingByCode(item.GlazingCode); !ok {
			return fmt.Errorf("item %d: unknown glass package %q", i+1, item.GlazingCode)
		}
		if _, ok := catalog.HardwareByCode(item.HardwareFinish); !ok {
			return fmt.Errorf("item %d: unknown hardware finish %q", i+1, item.HardwareFinish)
		}
		if _, ok := catalog.ColorByCode(item.ColorCode); !ok {
			return fmt.Errorf("item %d: unknown color %q", i+1, item.ColorCode)
		}

		if item.PanelCount != 0 {
			opts := catalog.OptionsForOpening(item.WidthIn, family)
			valid := false
			for _, o := range opts {
				if o.Count == item.PanelCount {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("item %d: %d panels do not fit a %g in opening", i+1, item.PanelCount, item.WidthIn)
			}
		}
	}
	return nil
}

// BuilderItem converts a validated draft item into a configurator quote item.
// Panel count and layout resolution still run through the builder.
func (item DraftItem) BuilderItem() QuoteItem {
	glazing := GlazingSelection{}
	if g, ok := catalog.GlazingByCode(item.GlazingCode); ok {
		glazing = GlazingSelection{PaneCount: g.PaneCount, Tint: g.Tint}
	}
	return QuoteItem{
		Product: ProductSpec{
			FamilyCode: item.FamilyCode,
			WidthIn:    item.WidthIn,
			HeightIn:   item.HeightIn,
			PanelCount: item.PanelCount,
		},
		Colors:         ColorSelection{Exterior: item.ColorCode, Interior: item.ColorCode, IsSame: true},
		Glazing:        glazing,
		HardwareFinish: item.HardwareFinish,
		Quantity:       item.Quantity,
	}
}
