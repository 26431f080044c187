package app

import (
	"door-quoter/internal/catalog"
	"door-quoter/internal/core"
)

// CatalogResult is returned by GetCatalog.
type CatalogResult struct {
	Families         []CatalogFamily          `json:"families"`
	GlazingOptions   []catalog.GlazingOption  `json:"glazing_options"`
	HardwareFinishes []catalog.HardwareFinish `json:"hardware_finishes"`
	Colors           []catalog.ColorOption    `json:"colors"`
}

// CatalogFamily is a product family plus its rendered-image URL.
type CatalogFamily struct {
	catalog.Family
	ImageURL string `json:"image_url,omitempty"`
}

// PanelCountOption is one valid panel count with its layout choices.
type PanelCountOption struct {
	Count           int              `json:"count"`
	PerPanelWidthIn float64          `json:"per_panel_width_in"`
	Layouts         []catalog.Layout `json:"layouts"`
}

// PanelOptionsResult is returned by GetPanelOptions. ResolvedCount is the
// count the builder should select: the caller's current count when it still
// fits, otherwise the smallest valid count. Zero means nothing fits.
type PanelOptionsResult struct {
	FamilyCode    string             `json:"family_code"`
	WidthIn       float64            `json:"width_in"`
	Options       []PanelCountOption `json:"options"`
	ResolvedCount int                `json:"resolved_count"`
}

// QuoteResult is returned by quote lifecycle operations.
type QuoteResult struct {
	Quote *core.Quote `json:"quote"`
}

// QuoteListResult is returned by ListQuotes and SearchByReferralCode.
type QuoteListResult struct {
	Quotes []core.Quote `json:"quotes"`
}

// DeletedQuoteListResult is returned by ListDeletedQuotes.
type DeletedQuoteListResult struct {
	Quotes []core.DeletedQuote `json:"quotes"`
}

// SalesRepResult is returned by salesperson create/update operations.
type SalesRepResult struct {
	SalesRep *core.SalesRep `json:"sales_rep"`
}

// SalesRepListResult is returned by ListSalesReps.
type SalesRepListResult struct {
	SalesReps []core.SalesRep `json:"sales_reps"`
}

// DraftResult is returned by DraftQuote.
type DraftResult struct {
	Draft                *core.QuoteDraft `json:"draft,omitempty"`
	ClarificationMessage string           `json:"clarification_message,omitempty"`
	IsClarification      bool             `json:"is_clarification"`
}

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserResult is returned by GetUser.
type UserResult struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
