package core

import (
	"time"

	"door-quoter/internal/pricing"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the pipeline stage a quote occupies in the admin kanban view.
type QuoteStatus string

const (
	StatusNew       QuoteStatus = "new"
	StatusContacted QuoteStatus = "contacted"
	StatusQuoted    QuoteStatus = "quoted"
	StatusFollowUp  QuoteStatus = "follow_up"
	StatusWon       QuoteStatus = "won"
	StatusLost      QuoteStatus = "lost"
)

// ValidStatus reports whether s is a known pipeline stage.
func ValidStatus(s QuoteStatus) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQuoted, StatusFollowUp, StatusWon, StatusLost:
		return true
	}
	return false
}

// Customer is the lead contact attached to a quote.
type Customer struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ZIP          string `json:"zip"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// ProductSpec identifies what was configured: the family, the opening, and
// the panel arrangement.
type ProductSpec struct {
	FamilyCode string  `json:"family_code"`
	SystemType string  `json:"system_type"`
	WidthIn    float64 `json:"width_in"`
	HeightIn   float64 `json:"height_in"`
	LayoutCode string  `json:"layout_code"`
	PanelCount int     `json:"panel_count"`
}

// ColorSelection holds exterior/interior frame colors.
type ColorSelection struct {
	Exterior string `json:"exterior"`
	Interior string `json:"interior"`
	IsSame   bool   `json:"is_same"`
}

// GlazingSelection holds the glass package choice.
type GlazingSelection struct {
	PaneCount int    `json:"pane_count"`
	Tint      string `json:"tint"`
}

// QuoteItem is one configured product on a quote. Breakdown is derived and is
// recomputed from the other fields before being trusted, never hand-edited.
type QuoteItem struct {
	Product        ProductSpec       `json:"product"`
	Colors         ColorSelection    `json:"colors"`
	Glazing        GlazingSelection  `json:"glazing"`
	HardwareFinish string            `json:"hardware_finish"`
	Quantity       int               `json:"quantity"`
	Breakdown      pricing.Breakdown `json:"price_breakdown"`
}

// Quote is the aggregate persisted on "Save & Email". ID and QuoteNumber are
// server-assigned at persistence; before that the quote lives only in builder
// state.
type Quote struct {
	ID               int                `json:"id"`
	QuoteNumber      string             `json:"quote_number"`
	Status           QuoteStatus        `json:"status"`
	Customer         Customer           `json:"customer"`
	Items            []QuoteItem        `json:"items"`
	InstallOption    string             `json:"install_option"`
	DeliveryOption   string             `json:"delivery_option"`
	InstallationCost decimal.Decimal    `json:"installation_cost"`
	DeliveryCost     decimal.Decimal    `json:"delivery_cost"`
	TaxRate          float64            `json:"tax_rate"`
	Discounts        []pricing.Discount `json:"discounts"`
	Totals           pricing.Totals     `json:"totals"`
	Tags             []string           `json:"tags"`
	SalesRepID       *int               `json:"sales_rep_id,omitempty"`
	FollowUpDate     *time.Time         `json:"follow_up_date,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// DeletedQuote is a soft-deleted quote parked in the deleted_quotes table
// until its retention watermark passes.
type DeletedQuote struct {
	Quote
	DeletedAt time.Time `json:"deleted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// QuoteFilter narrows admin quote listings. Nil/empty fields match everything.
type QuoteFilter struct {
	Status     *QuoteStatus
	SalesRepID *int
	Tag        string
	Search     string // matches quote number, customer name, email
	From       *time.Time
	To         *time.Time
}

// SalesRep is a salesperson quotes can be assigned to.
type SalesRep struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
