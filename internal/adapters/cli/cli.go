package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"door-quoter/internal/app"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "quotes", "q":
		req := app.ListQuotesRequest{}
		if len(args) > 1 {
			req.Status = args[1]
		}
		result, err := svc.ListQuotes(ctx, req)
		if err != nil {
			log.Fatalf("Failed to list quotes: %v", err)
		}
		printQuotes(result)

	case "show", "s":
		if len(args) < 2 {
			log.Fatal("Usage: app show <id-or-quote-number>")
		}
		result, err := svc.GetQuote(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to get quote: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Quote)

	case "draft", "d":
		if len(args) < 2 {
			log.Fatal("Usage: app draft \"<product request>\"")
		}
		result, err := svc.DraftQuote(ctx, args[1])
		if err != nil {
			log.Fatalf("Agent error: %v", err)
		}
		if result.IsClarification {
			fmt.Fprintln(os.Stderr, "AI needs clarification:", result.ClarificationMessage)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Draft)

	case "purge":
		purged, err := svc.PurgeExpiredQuotes(ctx)
		if err != nil {
			log.Fatalf("Purge failed: %v", err)
		}
		fmt.Printf("Purged %d expired quote(s).\n", purged)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: quotes, show, draft, purge", args[0])
	}
}

func printQuotes(result *app.QuoteListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-76s\n", "QUOTES")
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-10s %-12s %-24s %-12s %12s\n", "NUMBER", "STATUS", "CUSTOMER", "CREATED", "TOTAL")
	fmt.Println(strings.Repeat("-", 78))
	for _, q := range result.Quotes {
		fmt.Printf("  %-10s %-12s %-24s %-12s %12s\n",
			q.QuoteNumber, q.Status, truncate(q.Customer.Name, 24),
			q.CreatedAt.Format("2006-01-02"), q.Totals.GrandTotal.StringFixed(2))
	}
	fmt.Println(strings.Repeat("=", 78))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
