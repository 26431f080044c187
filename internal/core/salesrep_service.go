package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SalesRepService manages the salespeople quotes are assigned to.
type SalesRepService interface {
	CreateSalesRep(ctx context.Context, name, email, phone string) (*SalesRep, error)
	GetSalesRep(ctx context.Context, id int) (*SalesRep, error)
	// GetSalesReps returns salespeople; activeOnly hides deactivated reps.
	GetSalesReps(ctx context.Context, activeOnly bool) ([]SalesRep, error)
	UpdateSalesRep(ctx context.Context, id int, name, email, phone string) (*SalesRep, error)
	// SetSalesRepActive deactivates or reactivates a rep. Deactivation keeps
	// historical quote assignments intact.
	SetSalesRepActive(ctx context.Context, id int, active bool) error
}

type salesRepService struct {
	pool *pgxpool.Pool
}

// NewSalesRepService constructs a SalesRepService backed by PostgreSQL.
func NewSalesRepService(pool *pgxpool.Pool) SalesRepService {
	return &salesRepService{pool: pool}
}

func (s *salesRepService) CreateSalesRep(ctx context.Context, name, email, phone string) (*SalesRep, error) {
	if name == "" {
		return nil, fmt.Errorf("sales rep name must not be empty")
	}
	var r SalesRep
	err := s.pool.QueryRow(ctx, `
		INSERT INTO sales_reps (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, phone, is_active, created_at
	`, name, email, phone).Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create sales rep: %w", err)
	}
	return &r, nil
}

func (s *salesRepService) GetSalesRep(ctx context.Context, id int) (*SalesRep, error) {
	var r SalesRep
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, is_active, created_at
		FROM sales_reps WHERE id = $1
	`, id).Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.IsActive, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sales rep %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch sales rep %d: %w", id, err)
	}
	return &r, nil
}

func (s *salesRepService) GetSalesReps(ctx context.Context, activeOnly bool) ([]SalesRep, error) {
	query := `SELECT id, name, email, phone, is_active, created_at FROM sales_reps`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales reps: %w", err)
	}
	defer rows.Close()

	var reps []SalesRep
	for rows.Next() {
		var r SalesRep
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sales rep: %w", err)
		}
		reps = append(reps, r)
	}
	return reps, rows.Err()
}

func (s *salesRepService) UpdateSalesRep(ctx context.Context, id int, name, email, phone string) (*SalesRep, error) {
	if name == "" {
		return nil, fmt.Errorf("sales rep name must not be empty")
	}
	var r SalesRep
	err := s.pool.QueryRow(ctx, `
		UPDATE sales_reps SET name = $1, email = $2, phone = $3
		WHERE id = $4
		RETURNING id, name, email, phone, is_active, created_at
	`, name, email, phone, id).Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.IsActive, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sales rep %d not found", id)
		}
		return nil, fmt.Errorf("failed to update sales rep %d: %w", id, err)
	}
	return &r, nil
}

func (s *salesRepService) SetSalesRepActive(ctx context.Context, id int, active bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE sales_reps SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to set sales rep %d active=%v: %w", id, active, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sales rep %d not found", id)
	}
	return nil
}
