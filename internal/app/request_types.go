package app

import (
	"time"

	"door-quoter/internal/core"
	"door-quoter/internal/pricing"

	"github.com/shopspring/decimal"
)

// SubmitQuoteRequest is the input for persisting a quote. Breakdowns and
// totals carried on Items are ignored; the server reprices before saving.
type SubmitQuoteRequest struct {
	Customer         core.Customer
	Items            []core.QuoteItem
	InstallOption    string
	DeliveryOption   string
	InstallationCost decimal.Decimal
	DeliveryCost     decimal.Decimal
	TaxRate          float64
	Discounts        []pricing.Discount
	Prefix           string // quote number prefix; empty means the default
}

// ListQuotesRequest narrows the admin quote listing. Zero fields match all.
type ListQuotesRequest struct {
	Status     string
	SalesRepID *int
	Tag        string
	Search     string
	From       *time.Time
	To         *time.Time
}

// SalesRepRequest is the input for creating or updating a salesperson.
type SalesRepRequest struct {
	Name  string
	Email string
	Phone string
}
