package app

import (
	"context"
	"time"

	"door-quoter/internal/core"
)

// ApplicationService is the single interface all UI adapters call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// GetCatalog returns the full product catalog: families, glass packages,
	// hardware finishes, and frame colors.
	GetCatalog(ctx context.Context) (*CatalogResult, error)

	// GetPanelOptions returns the panel counts that fit an opening width for
	// a family, with the layouts available for each count. currentCount is
	// the builder's present selection; the result says which count to keep.
	GetPanelOptions(ctx context.Context, familyCode string, widthIn float64, currentCount int) (*PanelOptionsResult, error)

	// PreviewQuote recomputes every line breakdown and the quote totals
	// server-side and returns the priced quote. Nothing is persisted.
	PreviewQuote(ctx context.Context, quote core.Quote) (*QuoteResult, error)

	// SubmitQuote prices and persists a quote, assigning its quote number.
	SubmitQuote(ctx context.Context, req SubmitQuoteRequest) (*QuoteResult, error)

	// GetQuote returns a single quote by numeric ID or quote number string.
	GetQuote(ctx context.Context, ref string) (*QuoteResult, error)

	// ListQuotes returns quotes matching the filter, newest first.
	ListQuotes(ctx context.Context, req ListQuotesRequest) (*QuoteListResult, error)

	// UpdateQuoteStatus moves a quote to another pipeline stage.
	UpdateQuoteStatus(ctx context.Context, ref, status string) (*QuoteResult, error)

	// UpdateQuoteTags replaces the tag set on a quote.
	UpdateQuoteTags(ctx context.Context, ref string, tags []string) (*QuoteResult, error)

	// AssignSalesRep assigns or clears (nil) the salesperson on a quote.
	AssignSalesRep(ctx context.Context, ref string, salesRepID *int) (*QuoteResult, error)

	// SetFollowUpDate sets or clears (nil) the follow-up reminder on a quote.
	SetFollowUpDate(ctx context.Context, ref string, date *time.Time) (*QuoteResult, error)

	// DeleteQuote soft-deletes a quote. It disappears from listings but can
	// be restored until its retention period ends.
	DeleteQuote(ctx context.Context, ref string) error

	// RestoreQuote moves a soft-deleted quote back into the live set.
	RestoreQuote(ctx context.Context, id int) (*QuoteResult, error)

	// ListDeletedQuotes returns soft-deleted quotes awaiting expiry.
	ListDeletedQuotes(ctx context.Context) (*DeletedQuoteListResult, error)

	// PurgeExpiredQuotes permanently removes soft-deleted quotes whose
	// retention period has passed. Returns the number purged.
	PurgeExpiredQuotes(ctx context.Context) (int, error)

	// SearchByReferralCode returns live quotes carrying the referral code.
	SearchByReferralCode(ctx context.Context, code string) (*QuoteListResult, error)

	// ListSalesReps returns salespeople, optionally only active ones.
	ListSalesReps(ctx context.Context, activeOnly bool) (*SalesRepListResult, error)

	// CreateSalesRep adds a new salesperson.
	CreateSalesRep(ctx context.Context, req SalesRepRequest) (*SalesRepResult, error)

	// UpdateSalesRep updates a salesperson's contact details.
	UpdateSalesRep(ctx context.Context, id int, req SalesRepRequest) (*SalesRepResult, error)

	// SetSalesRepActive activates or deactivates a salesperson. Deactivation
	// keeps existing quote assignments intact.
	SetSalesRepActive(ctx context.Context, id int, active bool) error

	// DraftQuote sends a natural language product request to the AI agent and
	// returns either a loadable configuration draft or a clarification request.
	DraftQuote(ctx context.Context, text string) (*DraftResult, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)
}
