package main

import (
	"context"
	"log"
	"os"

	"door-quoter/internal/adapters/cli"
	"door-quoter/internal/ai"
	"door-quoter/internal/app"
	"door-quoter/internal/core"
	"door-quoter/internal/db"
	"door-quoter/internal/notify"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("Usage: app <quotes|show|draft|purge> [args]")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	var agent *ai.Agent
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		agent = ai.NewAgent(apiKey)
	}

	notifier := notify.New(os.Getenv("NOTIFY_WEBHOOK_URL"))
	defer notifier.Close()

	svc := app.NewAppService(
		pool,
		core.NewQuoteService(pool),
		core.NewSalesRepService(pool),
		core.NewUserService(pool),
		agent,
		notifier,
	)

	cli.Run(ctx, svc, os.Args[1:])
}
