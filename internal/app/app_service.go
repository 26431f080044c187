package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"door-quoter/internal/ai"
	"door-quoter/internal/catalog"
	"door-quoter/internal/core"
	"door-quoter/internal/notify"

	"github.com/jackc/pgx/v5/pgxpool"
)

type appService struct {
	pool            *pgxpool.Pool
	quoteService    core.QuoteService
	salesRepService core.SalesRepService
	userService     core.UserService
	agent           *ai.Agent
	notifier        *notify.Notifier
}

// NewAppService constructs an appService that satisfies ApplicationService.
// agent may be nil when no API key is configured; DraftQuote then errors.
func NewAppService(
	pool *pgxpool.Pool,
	quoteService core.QuoteService,
	salesRepService core.SalesRepService,
	userService core.UserService,
	agent *ai.Agent,
	notifier *notify.Notifier,
) ApplicationService {
	return &appService{
		pool:            pool,
		quoteService:    quoteService,
		salesRepService: salesRepService,
		userService:     userService,
		agent:           agent,
		notifier:        notifier,
	}
}

// GetCatalog returns the full product catalog.
func (s *appService) GetCatalog(ctx context.Context) (*CatalogResult, error) {
	families := catalog.Families()
	result := &CatalogResult{
		Families:         make([]CatalogFamily, 0, len(families)),
		GlazingOptions:   catalog.GlazingOptions(),
		HardwareFinishes: catalog.HardwareFinishes(),
		Colors:           catalog.ColorOptions(),
	}
	for _, f := range families {
		result.Families = append(result.Families, CatalogFamily{
			Family:   f,
			ImageURL: catalog.AssetURL(f.Code),
		})
	}
	return result, nil
}

// GetPanelOptions returns the panel counts that fit an opening width.
func (s *appService) GetPanelOptions(ctx context.Context, familyCode string, widthIn float64, currentCount int) (*PanelOptionsResult, error) {
	family, ok := catalog.FamilyByCode(familyCode)
	if !ok {
		return nil, fmt.Errorf("unknown product family %q", familyCode)
	}

	opts := catalog.OptionsForOpening(widthIn, family)
	resolved, _ := catalog.ResolvePanelCount(currentCount, opts)

	result := &PanelOptionsResult{
		FamilyCode:    familyCode,
		WidthIn:       widthIn,
		Options:       make([]PanelCountOption, 0, len(opts)),
		ResolvedCount: resolved,
	}
	for _, o := range opts {
		result.Options = append(result.Options, PanelCountOption{
			Count:           o.Count,
			PerPanelWidthIn: catalog.DisplayWidth(o.PerPanelWidthIn),
			Layouts:         catalog.LayoutsFor(familyCode, o.Count),
		})
	}
	return result, nil
}

// PreviewQuote reprices a quote without persisting it.
func (s *appService) PreviewQuote(ctx context.Context, quote core.Quote) (*QuoteResult, error) {
	priced := core.RepriceQuote(quote)
	return &QuoteResult{Quote: &priced}, nil
}

// SubmitQuote prices and persists a quote, assigning its quote number.
func (s *appService) SubmitQuote(ctx context.Context, req SubmitQuoteRequest) (*QuoteResult, error) {
	if strings.TrimSpace(req.Customer.Name) == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("a quote needs at least one item")
	}

	quote := core.Quote{
		Status:           core.StatusNew,
		Customer:         req.Customer,
		Items:            req.Items,
		InstallOption:    req.InstallOption,
		DeliveryOption:   req.DeliveryOption,
		InstallationCost: req.InstallationCost,
		DeliveryCost:     req.DeliveryCost,
		TaxRate:          req.TaxRate,
		Discounts:        req.Discounts,
	}

	saved, err := s.quoteService.AddQuote(ctx, quote, req.Prefix)
	if err != nil {
		return nil, err
	}

	s.notifier.Enqueue(notify.Event{
		Kind:          notify.KindQuoteSubmitted,
		QuoteID:       saved.ID,
		QuoteNumber:   saved.QuoteNumber,
		CustomerName:  saved.Customer.Name,
		CustomerEmail: saved.Customer.Email,
		GrandTotal:    saved.Totals.GrandTotal.StringFixed(2),
	})
	return &QuoteResult{Quote: saved}, nil
}

// GetQuote returns a single quote by numeric ID or quote number string.
func (s *appService) GetQuote(ctx context.Context, ref string) (*QuoteResult, error) {
	quote, err := s.resolveQuote(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: quote}, nil
}

// ListQuotes returns quotes matching the filter, newest first.
func (s *appService) ListQuotes(ctx context.Context, req ListQuotesRequest) (*QuoteListResult, error) {
	filter := core.QuoteFilter{
		SalesRepID: req.SalesRepID,
		Tag:        req.Tag,
		Search:     req.Search,
		From:       req.From,
		To:         req.To,
	}
	if req.Status != "" {
		status := core.QuoteStatus(req.Status)
		if !core.ValidStatus(status) {
			return nil, fmt.Errorf("unknown status %q", req.Status)
		}
		filter.Status = &status
	}

	quotes, err := s.quoteService.GetQuotes(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &QuoteListResult{Quotes: quotes}, nil
}

// UpdateQuoteStatus moves a quote to another pipeline stage.
func (s *appService) UpdateQuoteStatus(ctx context.Context, ref, status string) (*QuoteResult, error) {
	quote, err := s.resolveQuote(ctx, ref)
	if err != nil {
		return nil, err
	}
	newStatus := core.QuoteStatus(status)
	if err := s.quoteService.UpdateQuoteStatus(ctx, quote.ID, newStatus); err != nil {
		return nil, err
	}

	switch newStatus {
	case core.StatusWon:
		s.notifyStage(quote, notify.KindQuoteWon)
	case core.StatusLost:
		s.notifyStage(quote, notify.KindQuoteLost)
	}

	// Re-fetch to return the updated quote.
	quote, err = s.quoteService.GetQuote(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: quote}, nil
}

// UpdateQuoteTags replaces the tag set on a quote.
func (s *appService) UpdateQuoteTags(ctx context.Context, ref string, tags []string) (*QuoteResult, error) {
	quote, err := s.resolveQuote(ctx, ref)
	if err != nil {
		return nil, err
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if err := s.quoteService.UpdateQuoteTags(ctx, quote.ID, cleaned); err != nil {
		return nil, err
	}
	quote.Tags = cleaned
	return &QuoteResult{Quote: quote}, nil
}

// AssignSalesRep assigns or clears the salesperson on a quote.
func (s *appService) AssignSalesRep(ctx context.Context, ref string, salesRepID *int) (*QuoteResult, error) {
	quote, err := s.resolveQuote(ctx, ref)
	if err != nil {
		return nil, err
	}
	if salesRepID != nil {
		rep, err := s.salesRepService.GetSalesRep(ctx, *salesRepID)
		if err != nil {
			return nil, err
		}
		if !rep.IsActive {
			return nil, fmt.Errorf("salesperson %s is inactive", rep.Name)
		}
	}
	if err := s.quoteService.AssignSalesRep(ctx, quote.ID, salesRepID); err != nil {
		return nil, err
	}
	quote.SalesRepID = salesRepID
	return &QuoteResult{Quote: quote}, nil
}

// SetFollowUpDate sets or clears the follow-up reminder on a quote.
func (s *appService) SetFollowUpDate(ctx context.Context, ref string, date *time.Time) (*QuoteResult, error) {
	quote, err := s.resolveQuote(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.quoteService.SetFollowUpDate(ctx, quote.ID, date); err != nil {
		return nil, err
	}
	if date != nil {
		s.notifyStage(quote, notify.KindFollowUpSet)
	}
	quote.FollowUpDate = date
	return &QuoteResult{Quote: quote}, nil
}

// DeleteQuote soft-deletes a quote.
func (s *appService) DeleteQuote(ctx context.Context, ref string) error {
	quote, err := s.resolveQuote(ctx, ref)
	if err != nil {
		return err
	}
	return s.quoteService.DeleteQuote(ctx, quote.ID)
}

// RestoreQuote moves a soft-deleted quote back into the live set.
func (s *appService) RestoreQuote(ctx context.Context, id int) (*QuoteResult, error) {
	quote, err := s.quoteService.RestoreDeletedQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: quote}, nil
}

// ListDeletedQuotes returns soft-deleted quotes awaiting expiry.
func (s *appService) ListDeletedQuotes(ctx context.Context) (*DeletedQuoteListResult, error) {
	quotes, err := s.quoteService.ListDeletedQuotes(ctx)
	if err != nil {
		return nil, err
	}
	return &DeletedQuoteListResult{Quotes: quotes}, nil
}

// PurgeExpiredQuotes permanently removes expired soft-deleted quotes.
func (s *appService) PurgeExpiredQuotes(ctx context.Context) (int, error) {
	return s.quoteService.PurgeExpired(ctx)
}

// SearchByReferralCode returns live quotes carrying the referral code.
func (s *appService) SearchByReferralCode(ctx context.Context, code string) (*QuoteListResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("referral code is required")
	}
	quotes, err := s.quoteService.SearchByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &QuoteListResult{Quotes: quotes}, nil
}

// ListSalesReps returns salespeople, optionally only active ones.
func (s *appService) ListSalesReps(ctx context.Context, activeOnly bool) (*SalesRepListResult, error) {
	reps, err := s.salesRepService.GetSalesReps(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return &SalesRepListResult{SalesReps: reps}, nil
}

// CreateSalesRep adds a new salesperson.
func (s *appService) CreateSalesRep(ctx context.Context, req SalesRepRequest) (*SalesRepResult, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("salesperson name is required")
	}
	rep, err := s.salesRepService.CreateSalesRep(ctx, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	return &SalesRepResult{SalesRep: rep}, nil
}

// UpdateSalesRep updates a salesperson's contact details.
func (s *appService) UpdateSalesRep(ctx context.Context, id int, req SalesRepRequest) (*SalesRepResult, error) {
	rep, err := s.salesRepService.UpdateSalesRep(ctx, id, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	return &SalesRepResult{SalesRep: rep}, nil
}

// SetSalesRepActive activates or deactivates a salesperson.
func (s *appService) SetSalesRepActive(ctx context.Context, id int, active bool) error {
	return s.salesRepService.SetSalesRepActive(ctx, id, active)
}

// DraftQuote routes a natural language product request through the AI agent.
func (s *appService) DraftQuote(ctx context.Context, text string) (*DraftResult, error) {
	if s.agent == nil {
		return nil, fmt.Errorf("AI drafting is not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("request text is required")
	}

	resp, err := s.agent.InterpretQuoteRequest(ctx, text, catalogSummary())
	if err != nil {
		return nil, err
	}
	if resp.IsClarificationRequest {
		return &DraftResult{
			IsClarification:      true,
			ClarificationMessage: resp.Clarification.Message,
		}, nil
	}
	return &DraftResult{Draft: resp.Draft}, nil
}

// AuthenticateUser verifies credentials and returns a session on success.
func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	user, err := s.userService.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &UserSession{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// GetUser returns user profile by ID.
func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	user, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserResult{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

// ── private helpers ───────────────────────────────────────────────────────────

// resolveQuote looks up a quote by numeric ID or quote number string.
func (s *appService) resolveQuote(ctx context.Context, ref string) (*core.Quote, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return s.quoteService.GetQuote(ctx, id)
	}
	return s.quoteService.GetQuoteByNumber(ctx, ref)
}

func (s *appService) notifyStage(quote *core.Quote, kind string) {
	s.notifier.Enqueue(notify.Event{
		Kind:          kind,
		QuoteID:       quote.ID,
		QuoteNumber:   quote.QuoteNumber,
		CustomerName:  quote.Customer.Name,
		CustomerEmail: quote.Customer.Email,
		GrandTotal:    quote.Totals.GrandTotal.StringFixed(2),
	})
}

// catalogSummary renders the catalog as prompt context for the AI agent.
func catalogSummary() string {
	var b strings.Builder

	b.WriteString("Product families:\n")
	for _, f := range catalog.Families() {
		fmt.Fprintf(&b, "- %s: %s (%s), opening %g-%g in wide, %g-%g in tall, up to %d panels\n",
			f.Code, f.Name, f.SystemType,
			f.MinWidthIn, f.MaxWidthIn, f.MinHeightIn, f.MaxHeightIn, f.MaxPanelCount)
	}

	b.WriteString("Glass packages:\n")
	for _, g := range catalog.GlazingOptions() {
		fmt.Fprintf(&b, "- %s: %d panes, %s tint\n", g.Code, g.PaneCount, g.Tint)
	}

	b.WriteString("Hardware finishes:\n")
	for _, h := range catalog.HardwareFinishes() {
		fmt.Fprintf(&b, "- %s: %s\n", h.Code, h.Name)
	}

	b.WriteString("Frame colors:\n")
	for _, c := range catalog.ColorOptions() {
		fmt.Fprintf(&b, "- %s: %s\n", c.Code, c.Name)
	}

	return b.String()
}
