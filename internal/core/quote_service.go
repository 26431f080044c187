package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"door-quoter/internal/pricing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// retentionDays is how long a soft-deleted quote is kept before it becomes
// eligible for purge.
const retentionDays = 90

// DefaultQuotePrefix is the counter prefix for web-submitted quotes.
const DefaultQuotePrefix = "Q"

// ErrQuoteNotFound is returned when a quote ID or number matches nothing in
// the addressed collection (live or deleted).
var ErrQuoteNotFound = errors.New("quote not found")

// QuoteService persists quotes. A quote is either live (quotes table) or
// deleted (deleted_quotes table), never both; DeleteQuote and
// RestoreDeletedQuote move rows between the two atomically.
type QuoteService interface {
	// AddQuote persists a new quote and allocates its human-readable quote
	// number from the per-prefix counter, all in one transaction. Totals and
	// item breakdowns are recomputed before persisting; stored breakdowns are
	// never trusted as submitted.
	AddQuote(ctx context.Context, quote Quote, prefix string) (*Quote, error)

	GetQuote(ctx context.Context, id int) (*Quote, error)
	GetQuoteByNumber(ctx context.Context, number string) (*Quote, error)
	GetQuotes(ctx context.Context, filter QuoteFilter) ([]Quote, error)

	UpdateQuoteStatus(ctx context.Context, id int, status QuoteStatus) error
	UpdateQuoteTags(ctx context.Context, id int, tags []string) error
	AssignSalesRep(ctx context.Context, id int, salesRepID *int) error
	SetFollowUpDate(ctx context.Context, id int, date *time.Time) error

	// DeleteQuote soft-deletes: the row moves to deleted_quotes with an
	// expires_at watermark retentionDays out.
	DeleteQuote(ctx context.Context, id int) error
	RestoreDeletedQuote(ctx context.Context, id int) (*Quote, error)
	ListDeletedQuotes(ctx context.Context) ([]DeletedQuote, error)
	// PurgeExpired permanently removes deleted quotes past their watermark
	// and returns how many were purged.
	PurgeExpired(ctx context.Context) (int, error)

	SearchByReferralCode(ctx context.Context, code string) ([]Quote, error)
}

type quoteService struct {
	pool *pgxpool.Pool
}

// NewQuoteService constructs a QuoteService backed by PostgreSQL.
func NewQuoteService(pool *pgxpool.Pool) QuoteService {
	return &quoteService{pool: pool}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared
// query helpers.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RepriceQuote recomputes every item breakdown and the quote totals from the
// configuration fields. Persistence goes through this so a hand-edited
// breakdown can never reach storage.
func RepriceQuote(q Quote) Quote {
	q.Items = append([]QuoteItem(nil), q.Items...)
	breakdowns := make([]pricing.Breakdown, len(q.Items))
	for i := range q.Items {
		q.Items[i] = recomputeItem(q.Items[i])
		breakdowns[i] = q.Items[i].Breakdown
	}
	q.Totals = pricing.ComputeQuote(pricing.QuoteInput{
		Items:            breakdowns,
		InstallationCost: q.InstallationCost,
		DeliveryCost:     q.DeliveryCost,
		TaxRate:          q.TaxRate,
		Discounts:        q.Discounts,
	})
	return q
}

func (s *quoteService) AddQuote(ctx context.Context, quote Quote, prefix string) (*Quote, error) {
	if len(quote.Items) == 0 {
		return nil, fmt.Errorf("quote must have at least one item")
	}
	if prefix == "" {
		prefix = DefaultQuotePrefix
	}
	if quote.Status == "" {
		quote.Status = StatusNew
	}
	if !ValidStatus(quote.Status) {
		return nil, fmt.Errorf("invalid quote status %q", quote.Status)
	}

	quote = RepriceQuote(quote)

	itemsDoc, err := EncodeItems(quote.Items)
	if err != nil {
		return nil, err
	}
	discountsDoc, err := EncodeDiscounts(quote.Discounts)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Concurrency-safe quote number allocation: the counter row is upserted
	// and incremented in one statement, so two simultaneous submissions under
	// the same prefix can never read the same value. Sequence starts at 1000.
	var seq int64
	err = tx.QueryRow(ctx, `
		INSERT INTO quote_counters (prefix, last_number)
		VALUES ($1, 1000)
		ON CONFLICT (prefix)
		DO UPDATE SET last_number = quote_counters.last_number + 1
		RETURNING last_number
	`, prefix).Scan(&seq)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate quote number: %w", err)
	}
	quoteNumber := fmt.Sprintf("%s-%04d", prefix, seq)

	tags := quote.Tags
	if tags == nil {
		tags = []string{}
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO quotes (
			quote_number, status,
			customer_name, customer_email, customer_phone, customer_address, customer_zip, referral_code,
			install_option, delivery_option, installation_cost, delivery_cost, tax_rate,
			subtotal, discount_total, tax, grand_total,
			items, discounts, tags, sales_rep_id, follow_up_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id
	`,
		quoteNumber, string(quote.Status),
		quote.Customer.Name, quote.Customer.Email, quote.Customer.Phone, quote.Customer.Address, quote.Customer.ZIP, quote.Customer.ReferralCode,
		quote.InstallOption, quote.DeliveryOption, quote.InstallationCost, quote.DeliveryCost, quote.TaxRate,
		pricing.RoundMoney(quote.Totals.Subtotal), pricing.RoundMoney(quote.Totals.DiscountTotal),
		pricing.RoundMoney(quote.Totals.Tax), pricing.RoundMoney(quote.Totals.GrandTotal),
		itemsDoc, discountsDoc, tags, quote.SalesRepID, quote.FollowUpDate,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quote: %w", err)
	}

	return s.GetQuote(ctx, id)
}

const quoteColumns = `
	id, quote_number, status,
	customer_name, customer_email, customer_phone, customer_address, customer_zip, referral_code,
	install_option, delivery_option, installation_cost, delivery_cost, tax_rate,
	subtotal, discount_total, tax, grand_total,
	items, discounts, tags, sales_rep_id, follow_up_date, created_at, updated_at
`

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	var status string
	var itemsDoc, discountsDoc []byte
	err := row.Scan(
		&q.ID, &q.QuoteNumber, &status,
		&q.Customer.Name, &q.Customer.Email, &q.Customer.Phone, &q.Customer.Address, &q.Customer.ZIP, &q.Customer.ReferralCode,
		&q.InstallOption, &q.DeliveryOption, &q.InstallationCost, &q.DeliveryCost, &q.TaxRate,
		&q.Totals.Subtotal, &q.Totals.DiscountTotal, &q.Totals.Tax, &q.Totals.GrandTotal,
		&itemsDoc, &discountsDoc, &q.Tags, &q.SalesRepID, &q.FollowUpDate, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Status = QuoteStatus(status)
	q.Totals.InstallationCost = q.InstallationCost
	q.Totals.DeliveryCost = q.DeliveryCost

	// Validation at the deserialization boundary: a malformed document is a
	// distinct, loggable outcome, never a silent zero value.
	if q.Items, err = DecodeItems(itemsDoc); err != nil {
		return nil, fmt.Errorf("quote %d: %w", q.ID, err)
	}
	if q.Discounts, err = DecodeDiscounts(discountsDoc); err != nil {
		return nil, fmt.Errorf("quote %d: %w", q.ID, err)
	}
	return &q, nil
}

func (s *quoteService) getQuoteQ(ctx context.Context, q pgxQuerier, id int) (*Quote, error) {
	quote, err := scanQuote(q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("quote %d: %w", id, ErrQuoteNotFound)
		}
		return nil, fmt.Errorf("failed to fetch quote %d: %w", id, err)
	}
	return quote, nil
}

func (s *quoteService) GetQuote(ctx context.Context, id int) (*Quote, error) {
	return s.getQuoteQ(ctx, s.pool, id)
}

func (s *quoteService) GetQuoteByNumber(ctx context.Context, number string) (*Quote, error) {
	quote, err := scanQuote(s.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE quote_number = $1`, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("quote %s: %w", number, ErrQuoteNotFound)
		}
		return nil, fmt.Errorf("failed to fetch quote %s: %w", number, err)
	}
	return quote, nil
}

func (s *quoteService) GetQuotes(ctx context.Context, filter QuoteFilter) ([]Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		query += ` AND status = ` + arg(string(*filter.Status))
	}
	if filter.SalesRepID != nil {
		query += ` AND sales_rep_id = ` + arg(*filter.SalesRepID)
	}
	if filter.Tag != "" {
		query += ` AND ` + arg(filter.Tag) + ` = ANY(tags)`
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		p := arg("%" + search + "%")
		query += ` AND (quote_number ILIKE ` + p + ` OR customer_name ILIKE ` + p + ` OR customer_email ILIKE ` + p + `)`
	}
	if filter.From != nil {
		query += ` AND created_at >= ` + arg(*filter.From)
	}
	if filter.To != nil {
		query += ` AND created_at < ` + arg(*filter.To)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}
	return quotes, rows.Err()
}

func (s *quoteService) UpdateQuoteStatus(ctx context.Context, id int, status QuoteStatus) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid quote status %q", status)
	}
	return s.updateField(ctx, id, "status", string(status))
}

func (s *quoteService) UpdateQuoteTags(ctx context.Context, id int, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return s.updateField(ctx, id, "tags", tags)
}

func (s *quoteService) AssignSalesRep(ctx context.Context, id int, salesRepID *int) error {
	return s.updateField(ctx, id, "sales_rep_id", salesRepID)
}

func (s *quoteService) SetFollowUpDate(ctx context.Context, id int, date *time.Time) error {
	return s.updateField(ctx, id, "follow_up_date", date)
}

func (s *quoteService) updateField(ctx context.Context, id int, column string, value any) error {
	// column is always one of the fixed names above, never caller input.
	tag, err := s.pool.Exec(ctx,
		`UPDATE quotes SET `+column+` = $1, updated_at = NOW() WHERE id = $2`,
		value, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote %d %s: %w", id, column, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %d: %w", id, ErrQuoteNotFound)
	}
	return nil
}

// DeleteQuote moves the row into deleted_quotes with a retention watermark
// and removes it from quotes in the same transaction.
func (s *quoteService) DeleteQuote(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO deleted_quotes (
			id, quote_number, status,
			customer_name, customer_email, customer_phone, customer_address, customer_zip, referral_code,
			install_option, delivery_option, installation_cost, delivery_cost, tax_rate,
			subtotal, discount_total, tax, grand_total,
			items, discounts, tags, sales_rep_id, follow_up_date, created_at, updated_at,
			deleted_at, expires_at
		)
		SELECT `+quoteColumns+`, NOW(), NOW() + make_interval(days => $2)
		FROM quotes WHERE id = $1
	`, id, retentionDays)
	if err != nil {
		return fmt.Errorf("failed to archive quote %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %d: %w", id, ErrQuoteNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to remove quote %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit quote deletion: %w", err)
	}
	return nil
}

// RestoreDeletedQuote moves a soft-deleted quote back to the live table,
// clearing the retention watermark.
func (s *quoteService) RestoreDeletedQuote(ctx context.Context, id int) (*Quote, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO quotes (
			id, quote_number, status,
			customer_name, customer_email, customer_phone, customer_address, customer_zip, referral_code,
			install_option, delivery_option, installation_cost, delivery_cost, tax_rate,
			subtotal, discount_total, tax, grand_total,
			items, discounts, tags, sales_rep_id, follow_up_date, created_at, updated_at
		)
		SELECT `+quoteColumns+`
		FROM deleted_quotes WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to restore quote %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("deleted quote %d: %w", id, ErrQuoteNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM deleted_quotes WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to remove archived quote %d: %w", id, err)
	}

	quote, err := s.getQuoteQ(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quote restore: %w", err)
	}
	return quote, nil
}

func (s *quoteService) ListDeletedQuotes(ctx context.Context) ([]DeletedQuote, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+quoteColumns+`, deleted_at, expires_at FROM deleted_quotes ORDER BY deleted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query deleted quotes: %w", err)
	}
	defer rows.Close()

	var deleted []DeletedQuote
	for rows.Next() {
		var d DeletedQuote
		var status string
		var itemsDoc, discountsDoc []byte
		err := rows.Scan(
			&d.ID, &d.QuoteNumber, &status,
			&d.Customer.Name, &d.Customer.Email, &d.Customer.Phone, &d.Customer.Address, &d.Customer.ZIP, &d.Customer.ReferralCode,
			&d.InstallOption, &d.DeliveryOption, &d.InstallationCost, &d.DeliveryCost, &d.TaxRate,
			&d.Totals.Subtotal, &d.Totals.DiscountTotal, &d.Totals.Tax, &d.Totals.GrandTotal,
			&itemsDoc, &discountsDoc, &d.Tags, &d.SalesRepID, &d.FollowUpDate, &d.CreatedAt, &d.UpdatedAt,
			&d.DeletedAt, &d.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deleted quote: %w", err)
		}
		d.Status = QuoteStatus(status)
		if d.Items, err = DecodeItems(itemsDoc); err != nil {
			return nil, fmt.Errorf("deleted quote %d: %w", d.ID, err)
		}
		if d.Discounts, err = DecodeDiscounts(discountsDoc); err != nil {
			return nil, fmt.Errorf("deleted quote %d: %w", d.ID, err)
		}
		deleted = append(deleted, d)
	}
	return deleted, rows.Err()
}

func (s *quoteService) PurgeExpired(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM deleted_quotes WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired quotes: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *quoteService) SearchByReferralCode(ctx context.Context, code string) ([]Quote, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("referral code must not be empty")
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE referral_code = $1 ORDER BY id DESC`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to search by referral code: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}
	return quotes, rows.Err()
}
