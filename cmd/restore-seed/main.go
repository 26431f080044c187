// restore-seed is a one-shot tool to restore baseline data: the admin
// dashboard user, the demo salespeople, and the default quote counter. Run it
// after provisioning a fresh database or when the seed rows have been
// accidentally wiped.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"log"
	"os"

	"door-quoter/internal/core"
	"door-quoter/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD environment variable not set")
	}
	passwordHash, err := core.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring admin user...")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ('admin', 'admin@example.com', $1, 'admin')
		ON CONFLICT (username) DO UPDATE
		  SET password_hash = EXCLUDED.password_hash,
		      role = EXCLUDED.role,
		      is_active = TRUE;
	`, passwordHash)
	if err != nil {
		log.Fatalf("Failed to restore admin user: %v", err)
	}

	log.Println("Restoring demo salespeople...")
	_, err = tx.Exec(ctx, `
		INSERT INTO sales_reps (name, email, phone)
		SELECT r.name, r.email, r.phone
		FROM (VALUES
		    ('Dana Ortiz', 'dana@example.com', '+1-555-0101'),
		    ('Lee Park',   'lee@example.com',  '+1-555-0102'),
		    ('Sam Whitley','sam@example.com',  '+1-555-0103')
		) AS r(name, email, phone)
		WHERE NOT EXISTS (
		    SELECT 1 FROM sales_reps s WHERE s.email = r.email
		);
	`)
	if err != nil {
		log.Fatalf("Failed to restore salespeople: %v", err)
	}

	log.Println("Restoring quote counter...")
	// 999 so the next allocation issues 1000, matching a fresh counter.
	_, err = tx.Exec(ctx, `
		INSERT INTO quote_counters (prefix, last_number)
		VALUES ($1, 999)
		ON CONFLICT (prefix) DO NOTHING;
	`, core.DefaultQuotePrefix)
	if err != nil {
		log.Fatalf("Failed to restore quote counter: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed data restored successfully.")
	os.Exit(0)
}
