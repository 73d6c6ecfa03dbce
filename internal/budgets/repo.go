package budgets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) List(ctx context.Context, userID string) ([]BudgetCategory, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id::text, user_id, name, amount, created_at
		 FROM budget_categories
		 WHERE user_id = $1
		 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BudgetCategory, 0, 16)
	for rows.Next() {
		var b BudgetCategory
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserts a category relying on the per-owner name constraint; a taken
// name surfaces as DuplicateError with the holder's id.
func (r *Repo) Create(ctx context.Context, userID string, in NewBudget) (BudgetCategory, error) {
	out := BudgetCategory{
		UserID: userID,
		Name:   in.Name,
		Amount: in.Amount,
	}
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO budget_categories (user_id, name, amount)
		 VALUES ($1, $2, $3)
		 RETURNING id::text, created_at`,
		userID, in.Name, in.Amount,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return BudgetCategory{}, &DuplicateError{ID: r.lookupByName(ctx, userID, in.Name)}
		}
		return BudgetCategory{}, fmt.Errorf("insert budget category: %w", err)
	}
	return out, nil
}

func (r *Repo) lookupByName(ctx context.Context, userID, name string) string {
	var id string
	err := r.Pool.QueryRow(ctx,
		`SELECT id::text FROM budget_categories WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&id)
	if err != nil {
		return ""
	}
	return id
}

// Update replaces name and amount. The owner predicate is part of the WHERE
// clause, so a foreign row reads as absent.
func (r *Repo) Update(ctx context.Context, userID, id string, in NewBudget) (BudgetCategory, error) {
	out := BudgetCategory{
		ID:     id,
		UserID: userID,
		Name:   in.Name,
		Amount: in.Amount,
	}
	err := r.Pool.QueryRow(ctx,
		`UPDATE budget_categories
		 SET name = $1, amount = $2
		 WHERE id = $3::uuid AND user_id = $4
		 RETURNING created_at`,
		in.Name, in.Amount, id, userID,
	).Scan(&out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return BudgetCategory{}, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return BudgetCategory{}, &DuplicateError{ID: r.lookupByName(ctx, userID, in.Name)}
		}
		return BudgetCategory{}, fmt.Errorf("update budget category: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx,
		`DELETE FROM budget_categories WHERE id = $1::uuid AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
