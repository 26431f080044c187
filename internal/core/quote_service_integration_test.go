package core_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"door-quoter/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE quotes, deleted_quotes, quote_counters, sales_reps, users CASCADE;

		INSERT INTO sales_reps (name, email, phone) VALUES
		('Dana Ortiz', 'dana@example.com', '+1-555-0101'),
		('Lee Park',   'lee@example.com',  '+1-555-0102');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func testQuote() core.Quote {
	return core.Quote{
		Customer: core.Customer{
			Name:         "Alex Rivera",
			Email:        "alex@example.com",
			Phone:        "+1-555-0199",
			Address:      "12 Canyon Rd",
			ZIP:          "90210",
			ReferralCode: "SPRING24",
		},
		Items:   []core.QuoteItem{newTestItem()},
		TaxRate: 0.0825,
	}
}

func TestQuoteService_AddAssignsNumberAndReprices(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewQuoteService(pool)
	ctx := context.Background()

	saved, err := svc.AddQuote(ctx, testQuote(), "")
	if err != nil {
		t.Fatalf("AddQuote failed: %v", err)
	}
	if saved.QuoteNumber != "Q-1000" {
		t.Errorf("first quote number = %s, want Q-1000", saved.QuoteNumber)
	}
	if saved.Status != core.StatusNew {
		t.Errorf("status = %s, want new", saved.Status)
	}
	if saved.Items[0].Breakdown.UnitPrice.IsZero() {
		t.Error("breakdown must be recomputed at persistence")
	}
	if saved.Totals.GrandTotal.IsZero() {
		t.Error("totals must be computed at persistence")
	}

	second, err := svc.AddQuote(ctx, testQuote(), "")
	if err != nil {
		t.Fatalf("second AddQuote failed: %v", err)
	}
	if second.QuoteNumber != "Q-1001" {
		t.Errorf("second quote number = %s, want Q-1001", second.QuoteNumber)
	}

	// A different prefix has its own counter.
	showroom, err := svc.AddQuote(ctx, testQuote(), "SR")
	if err != nil {
		t.Fatalf("showroom AddQuote failed: %v", err)
	}
	if showroom.QuoteNumber != "SR-1000" {
		t.Errorf("showroom quote number = %s, want SR-1000", showroom.QuoteNumber)
	}
}

func TestQuoteService_ConcurrentNumberAllocation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewQuoteService(pool)
	ctx := context.Background()

	const n = 20
	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saved, err := svc.AddQuote(ctx, testQuote(), "Q")
			if err != nil {
				t.Errorf("concurrent AddQuote failed: %v", err)
				return
			}
			numbers <- saved.QuoteNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for num := range numbers {
		if seen[num] {
			t.Fatalf("duplicate quote number allocated: %s", num)
		}
		seen[num] = true
		if !strings.HasPrefix(num, "Q-1") {
			t.Errorf("unexpected quote number format: %s", num)
		}
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct numbers, got %d", n, len(seen))
	}
}

func TestQuoteService_FiltersAndUpdates(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewQuoteService(pool)
	ctx := context.Background()

	saved, err := svc.AddQuote(ctx, testQuote(), "")
	if err != nil {
		t.Fatalf("AddQuote failed: %v", err)
	}

	if err := svc.UpdateQuoteStatus(ctx, saved.ID, core.StatusContacted); err != nil {
		t.Fatalf("UpdateQuoteStatus failed: %v", err)
	}
	if err := svc.UpdateQuoteStatus(ctx, saved.ID, "bogus"); err == nil {
		t.Error("unknown status must be rejected")
	}
	if err := svc.UpdateQuoteTags(ctx, saved.ID, []string{"hot", "trade-show"}); err != nil {
		t.Fatalf("UpdateQuoteTags failed: %v", err)
	}

	var repID int
	if err := pool.QueryRow(ctx, "SELECT id FROM sales_reps WHERE name = 'Dana Ortiz'").Scan(&repID); err != nil {
		t.Fatalf("failed to look up rep: %v", err)
	}
	if err := svc.AssignSalesRep(ctx, saved.ID, &repID); err != nil {
		t.Fatalf("AssignSalesRep failed: %v", err)
	}
	followUp := time.Now().Add(72 * time.Hour)
	if err := svc.SetFollowUpDate(ctx, saved.ID, &followUp); err != nil {
		t.Fatalf("SetFollowUpDate failed: %v", err)
	}

	status := core.StatusContacted
	byStatus, err := svc.GetQuotes(ctx, core.QuoteFilter{Status: &status})
	if err != nil {
		t.Fatalf("GetQuotes by status failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != saved.ID {
		t.Errorf("status filter: got %d quotes", len(byStatus))
	}

	byTag, err := svc.GetQuotes(ctx, core.QuoteFilter{Tag: "hot"})
	if err != nil {
		t.Fatalf("GetQuotes by tag failed: %v", err)
	}
	if len(byTag) != 1 {
		t.Errorf("tag filter: got %d quotes", len(byTag))
	}

	bySearch, err := svc.GetQuotes(ctx, core.QuoteFilter{Search: "rivera"})
	if err != nil {
		t.Fatalf("GetQuotes by search failed: %v", err)
	}
	if len(bySearch) != 1 {
		t.Errorf("search filter: got %d quotes", len(bySearch))
	}

	byReferral, err := svc.SearchByReferralCode(ctx, "SPRING24")
	if err != nil {
		t.Fatalf("SearchByReferralCode failed: %v", err)
	}
	if len(byReferral) != 1 {
		t.Errorf("referral search: got %d quotes", len(byReferral))
	}

	fetched, err := svc.GetQuoteByNumber(ctx, saved.QuoteNumber)
	if err != nil {
		t.Fatalf("GetQuoteByNumber failed: %v", err)
	}
	if fetched.SalesRepID == nil || *fetched.SalesRepID != repID {
		t.Error("sales rep assignment not persisted")
	}
	if fetched.FollowUpDate == nil {
		t.Error("follow-up date not persisted")
	}
}

func TestQuoteService_SoftDeleteAndRestore(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewQuoteService(pool)
	ctx := context.Background()

	saved, err := svc.AddQuote(ctx, testQuote(), "")
	if err != nil {
		t.Fatalf("AddQuote failed: %v", err)
	}

	if err := svc.DeleteQuote(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteQuote failed: %v", err)
	}

	// A quote is live or deleted, never both.
	if _, err := svc.GetQuote(ctx, saved.ID); !errors.Is(err, core.ErrQuoteNotFound) {
		t.Errorf("deleted quote still live: %v", err)
	}
	deleted, err := svc.ListDeletedQuotes(ctx)
	if err != nil {
		t.Fatalf("ListDeletedQuotes failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != saved.ID {
		t.Fatalf("expected 1 deleted quote, got %d", len(deleted))
	}
	if !deleted[0].ExpiresAt.After(deleted[0].DeletedAt) {
		t.Error("retention watermark must be in the future")
	}

	restored, err := svc.RestoreDeletedQuote(ctx, saved.ID)
	if err != nil {
		t.Fatalf("RestoreDeletedQuote failed: %v", err)
	}
	if restored.QuoteNumber != saved.QuoteNumber {
		t.Errorf("restore changed quote number: %s vs %s", restored.QuoteNumber, saved.QuoteNumber)
	}
	if deleted, _ := svc.ListDeletedQuotes(ctx); len(deleted) != 0 {
		t.Error("restored quote still present in deleted_quotes")
	}

	// Double delete / restore of missing rows report not-found.
	if err := svc.DeleteQuote(ctx, 999999); !errors.Is(err, core.ErrQuoteNotFound) {
		t.Errorf("deleting missing quote: %v", err)
	}
	if _, err := svc.RestoreDeletedQuote(ctx, saved.ID); !errors.Is(err, core.ErrQuoteNotFound) {
		t.Errorf("restoring live quote: %v", err)
	}
}

func TestQuoteService_PurgeExpired(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewQuoteService(pool)
	ctx := context.Background()

	saved, err := svc.AddQuote(ctx, testQuote(), "")
	if err != nil {
		t.Fatalf("AddQuote failed: %v", err)
	}
	if err := svc.DeleteQuote(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteQuote failed: %v", err)
	}

	// Not yet expired: purge removes nothing.
	purged, err := svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if purged != 0 {
		t.Errorf("purged %d quotes before the watermark", purged)
	}

	// Force the watermark into the past and purge again.
	if _, err := pool.Exec(ctx,
		"UPDATE deleted_quotes SET expires_at = NOW() - interval '1 day' WHERE id = $1", saved.ID,
	); err != nil {
		t.Fatalf("failed to backdate watermark: %v", err)
	}
	purged, err = svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	if _, err := svc.RestoreDeletedQuote(ctx, saved.ID); !errors.Is(err, core.ErrQuoteNotFound) {
		t.Error("purged quote must be unrestorable")
	}
}

func TestQuoteService_MalformedDocumentSurfaces(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewQuoteService(pool)
	ctx := context.Background()

	saved, err := svc.AddQuote(ctx, testQuote(), "")
	if err != nil {
		t.Fatalf("AddQuote failed: %v", err)
	}

	// Corrupt the stored document directly; the read path must surface a
	// typed malformed-document error instead of a silent empty quote.
	if _, err := pool.Exec(ctx,
		`UPDATE quotes SET items = '{"not":"a list"}'::jsonb WHERE id = $1`, saved.ID,
	); err != nil {
		t.Fatalf("failed to corrupt document: %v", err)
	}

	_, err = svc.GetQuote(ctx, saved.ID)
	if !errors.Is(err, core.ErrMalformedDocument) {
		t.Errorf("want ErrMalformedDocument, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), fmt.Sprint(saved.ID)) {
		t.Errorf("error should identify the quote: %v", err)
	}
}
