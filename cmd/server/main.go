package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "door-quoter/internal/adapters/web"
	"door-quoter/internal/ai"
	"door-quoter/internal/app"
	"door-quoter/internal/core"
	"door-quoter/internal/db"
	"door-quoter/internal/notify"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	quoteService := core.NewQuoteService(pool)
	salesRepService := core.NewSalesRepService(pool)
	userService := core.NewUserService(pool)

	var agent *ai.Agent
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		agent = ai.NewAgent(apiKey)
	} else {
		log.Println("Warning: OPENAI_API_KEY is not set, AI drafting disabled")
	}

	notifier := notify.New(os.Getenv("NOTIFY_WEBHOOK_URL"))
	defer notifier.Close()

	svc := app.NewAppService(pool, quoteService, salesRepService, userService, agent, notifier)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
