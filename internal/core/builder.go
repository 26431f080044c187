package core

import (
	"fmt"

	"door-quoter/internal/catalog"
	"door-quoter/internal/pricing"

	"github.com/shopspring/decimal"
)

// BuilderState is the in-progress quote assembled through the configurator
// steps. It is a plain value: every mutation goes through Apply, which returns
// a new state and never mutates its input. There is no ambient singleton.
//
// Notice carries the user-facing "please adjust" message for derivation
// outcomes (no valid panel count, no layouts available). Those are normal
// results, not errors; Apply reserves its error return for caller mistakes
// such as an out-of-range item index.
type BuilderState struct {
	Customer         Customer
	Items            []QuoteItem
	InstallOption    string
	DeliveryOption   string
	InstallationCost decimal.Decimal
	DeliveryCost     decimal.Decimal
	TaxRate          float64
	Discounts        []pricing.Discount
	Totals           pricing.Totals
	Notice           string
}

// Action is a single builder mutation. The concrete types below are the full
// set of transitions the configurator wizard dispatches.
type Action interface{ isAction() }

type SetCustomer struct{ Customer Customer }

// AddItem appends a configured item. PanelCount and LayoutCode are resolved
// from the dimensions; the breakdown is recomputed regardless of what the
// caller supplied.
type AddItem struct{ Item QuoteItem }

type RemoveItem struct{ Index int }

type SetDimensions struct {
	Index    int
	WidthIn  float64
	HeightIn float64
}

type SetPanelCount struct {
	Index int
	Count int
}

type SetLayout struct {
	Index int
	Code  string
}

type SetGlazing struct {
	Index   int
	Glazing GlazingSelection
}

type SetColors struct {
	Index  int
	Colors ColorSelection
}

type SetHardware struct {
	Index int
	Code  string
}

type SetQuantity struct {
	Index    int
	Quantity int
}

type SetInstallOption struct {
	Option string
	Cost   decimal.Decimal
}

type SetDeliveryOption struct {
	Option string
	Cost   decimal.Decimal
}

type SetDiscounts struct{ Discounts []pricing.Discount }

type SetTaxRate struct{ Rate float64 }

func (SetCustomer) isAction()       {}
func (AddItem) isAction()           {}
func (RemoveItem) isAction()        {}
func (SetDimensions) isAction()     {}
func (SetPanelCount) isAction()     {}
func (SetLayout) isAction()         {}
func (SetGlazing) isAction()        {}
func (SetColors) isAction()         {}
func (SetHardware) isAction()       {}
func (SetQuantity) isAction()       {}
func (SetInstallOption) isAction()  {}
func (SetDeliveryOption) isAction() {}
func (SetDiscounts) isAction()      {}
func (SetTaxRate) isAction()        {}

// Apply is the builder's state-transition function. It copies state, applies
// the action, recomputes the affected breakdown and the quote totals, and
// returns the next state. The stored breakdowns are therefore never stale:
// any path that changes a priced field goes through a recompute.
func Apply(state BuilderState, action Action) (BuilderState, error) {
	next := cloneState(state)
	next.Notice = ""

	switch a := action.(type) {
	case SetCustomer:
		next.Customer = a.Customer

	case AddItem:
		item := a.Item
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		next.resolveLayout(&item, item.Product.PanelCount)
		item = recomputeItem(item)
		next.Items = append(next.Items, item)

	case RemoveItem:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		next.Items = append(next.Items[:a.Index], next.Items[a.Index+1:]...)

	case SetDimensions:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		item := &next.Items[a.Index]
		item.Product.WidthIn = a.WidthIn
		item.Product.HeightIn = a.HeightIn
		next.resolveLayout(item, item.Product.PanelCount)
		*item = recomputeItem(*item)

	case SetPanelCount:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		item := &next.Items[a.Index]
		next.resolveLayout(item, a.Count)
		*item = recomputeItem(*item)

	case SetLayout:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		item := &next.Items[a.Index]
		if !catalog.ValidLayoutCode(item.Product.FamilyCode, item.Product.PanelCount, a.Code) {
			return state, fmt.Errorf("layout %s is not valid for %s with %d panels",
				a.Code, item.Product.FamilyCode, item.Product.PanelCount)
		}
		item.Product.LayoutCode = a.Code

	case SetGlazing:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		next.Items[a.Index].Glazing = a.Glazing
		next.Items[a.Index] = recomputeItem(next.Items[a.Index])

	case SetColors:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		colors := a.Colors
		if colors.IsSame {
			colors.Interior = colors.Exterior
		}
		next.Items[a.Index].Colors = colors
		next.Items[a.Index] = recomputeItem(next.Items[a.Index])

	case SetHardware:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		next.Items[a.Index].HardwareFinish = a.Code
		next.Items[a.Index] = recomputeItem(next.Items[a.Index])

	case SetQuantity:
		if err := checkIndex(a.Index, next.Items); err != nil {
			return state, err
		}
		if a.Quantity < 1 {
			return state, fmt.Errorf("quantity must be at least 1, got %d", a.Quantity)
		}
		next.Items[a.Index].Quantity = a.Quantity
		next.Items[a.Index] = recomputeItem(next.Items[a.Index])

	case SetInstallOption:
		next.InstallOption = a.Option
		next.InstallationCost = a.Cost

	case SetDeliveryOption:
		next.DeliveryOption = a.Option
		next.DeliveryCost = a.Cost

	case SetDiscounts:
		next.Discounts = append([]pricing.Discount(nil), a.Discounts...)

	case SetTaxRate:
		next.TaxRate = a.Rate

	default:
		return state, fmt.Errorf("unknown builder action %T", action)
	}

	next.Totals = computeTotals(next)
	return next, nil
}

// resolveLayout resolves the panel count for the item's current dimensions,
// preferring wanted when it is still valid, and repairs the layout code. When
// nothing fits, the item degrades to zero panels and the state carries a
// user-facing notice.
func (s *BuilderState) resolveLayout(item *QuoteItem, wanted int) {
	family, ok := catalog.FamilyByCode(item.Product.FamilyCode)
	if !ok {
		item.Product.PanelCount = 0
		item.Product.LayoutCode = ""
		s.Notice = fmt.Sprintf("unknown product family %q — please pick a product", item.Product.FamilyCode)
		return
	}
	item.Product.SystemType = family.SystemType

	opts := catalog.OptionsForOpening(item.Product.WidthIn, family)
	count, ok := catalog.ResolvePanelCount(wanted, opts)
	if !ok {
		item.Product.PanelCount = 0
		item.Product.LayoutCode = ""
		s.Notice = "no valid panel count for this width — please adjust the dimensions"
		return
	}
	item.Product.PanelCount = count

	if catalog.ValidLayoutCode(family.Code, count, item.Product.LayoutCode) {
		return
	}
	layout, ok := catalog.DefaultLayout(family.Code, count)
	if !ok {
		item.Product.LayoutCode = ""
		s.Notice = "no layouts available for this panel count"
		return
	}
	item.Product.LayoutCode = layout.Code
}

// recomputeItem derives the item's price breakdown from its configuration.
// Unknown option codes contribute zero rather than failing the computation.
func recomputeItem(item QuoteItem) QuoteItem {
	var in pricing.ItemInput

	if family, ok := catalog.FamilyByCode(item.Product.FamilyCode); ok {
		in.BaseCostPerSqFt = family.BaseCostPerSqFt
		in.PerPanelCost = family.PerPanelCost
	}
	in.WidthIn = item.Product.WidthIn
	in.HeightIn = item.Product.HeightIn
	in.PanelCount = item.Product.PanelCount
	in.Quantity = item.Quantity

	if glazing, ok := catalog.GlazingBySelection(item.Glazing.PaneCount, item.Glazing.Tint); ok {
		in.GlazingAdderPerPanel = glazing.AdderPerPanel
	}
	if hw, ok := catalog.HardwareByCode(item.HardwareFinish); ok {
		in.UpgradeAdders = append(in.UpgradeAdders, hw.Adder)
	}
	if c, ok := catalog.ColorByCode(item.Colors.Exterior); ok {
		in.UpgradeAdders = append(in.UpgradeAdders, c.Adder)
	}
	if !item.Colors.IsSame {
		if c, ok := catalog.ColorByCode(item.Colors.Interior); ok {
			in.UpgradeAdders = append(in.UpgradeAdders, c.Adder)
		}
	}

	item.Breakdown = pricing.ComputeItem(in)
	return item
}

func computeTotals(s BuilderState) pricing.Totals {
	breakdowns := make([]pricing.Breakdown, len(s.Items))
	for i, item := range s.Items {
		breakdowns[i] = item.Breakdown
	}
	return pricing.ComputeQuote(pricing.QuoteInput{
		Items:            breakdowns,
		InstallationCost: s.InstallationCost,
		DeliveryCost:     s.DeliveryCost,
		TaxRate:          s.TaxRate,
		Discounts:        s.Discounts,
	})
}

// Quote materializes the builder state into a persistable Quote.
func (s BuilderState) Quote() Quote {
	return Quote{
		Status:           StatusNew,
		Customer:         s.Customer,
		Items:            append([]QuoteItem(nil), s.Items...),
		InstallOption:    s.InstallOption,
		DeliveryOption:   s.DeliveryOption,
		InstallationCost: s.InstallationCost,
		DeliveryCost:     s.DeliveryCost,
		TaxRate:          s.TaxRate,
		Discounts:        append([]pricing.Discount(nil), s.Discounts...),
		Totals:           s.Totals,
	}
}

func cloneState(s BuilderState) BuilderState {
	s.Items = append([]QuoteItem(nil), s.Items...)
	s.Discounts = append([]pricing.Discount(nil), s.Discounts...)
	return s
}

func checkIndex(i int, items []QuoteItem) error {
	if i < 0 || i >= len(items) {
		return fmt.Errorf("item index %d out of range (have %d items)", i, len(items))
	}
	return nil
}
