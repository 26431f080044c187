package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"door-quoter/internal/ai"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // Load .env if present

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	agent := ai.NewAgent(apiKey)
	ctx := context.Background()

	catalog := `
Product families:
- bifold: Bifold Door System (door), opening 24-240 in wide, 48-120 in tall, up to 8 panels
- multislide: Multi-Slide Door System (door), opening 48-240 in wide, 48-120 in tall, up to 8 panels
- windowwall: Window Wall System (window), opening 24-192 in wide, 24-96 in tall, up to 6 panels
Glass packages:
- double_clear: 2 panes, clear tint
- double_lowe: 2 panes, low-e tint
Hardware finishes:
- black: Matte Black
- brushed_nickel: Brushed Nickel
Frame colors:
- white: White
- black: Black
`

	request := "I need a 12 foot wide by 8 foot tall bifold door with low-e glass, black frames."

	fmt.Printf("INTERPRETING REQUEST: %s\n", request)
	resp, err := agent.InterpretQuoteRequest(ctx, request, catalog)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if resp.IsClarificationRequest {
		fmt.Printf("\n--- CLARIFICATION ---\n%s\n", resp.Clarification.Message)
		return
	}

	draft := resp.Draft
	fmt.Printf("\n--- DRAFT ---\n")
	fmt.Printf("Confidence: %.2f\n", draft.Confidence)
	fmt.Printf("Reasoning: %s\n", draft.Reasoning)

	fmt.Printf("\nItems:\n")
	for _, item := range draft.Items {
		fmt.Printf("- Family: %s, %gx%g in, glazing: %s, color: %s, qty: %d\n",
			item.FamilyCode, item.WidthIn, item.HeightIn, item.GlazingCode, item.ColorCode, item.Quantity)
	}
}
