package transactions

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

// Create inserts a transaction behind the duplicate guard: inside one storage
// transaction it looks for an identical tuple written in the trailing 60
// seconds and aborts with DuplicateError when found. The window catches
// double-submits; under a true race both requests can pass the check, and the
// unique constraint on the tuple is what actually holds the invariant.
func (r *Repo) Create(ctx context.Context, userID string, in NewTransaction) (Transaction, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback(ctx)

	var existingID string
	err = tx.QueryRow(ctx,
		`SELECT id::text
		 FROM transactions
		 WHERE user_id = $1
		   AND description = $2
		   AND amount = $3
		   AND category = $4
		   AND date = $5::date
		   AND created_at >= now() - INTERVAL '60 seconds'
		 LIMIT 1`,
		userID, in.Description, in.Amount, in.Category, in.Date,
	).Scan(&existingID)
	switch {
	case err == nil:
		return Transaction{}, &DuplicateError{ID: existingID}
	case !errors.Is(err, pgx.ErrNoRows):
		return Transaction{}, fmt.Errorf("duplicate check: %w", err)
	}

	out := Transaction{
		UserID:      userID,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, description, amount, category, date)
		 VALUES ($1, $2, $3, $4, $5::date)
		 RETURNING id::text, date::text, created_at`,
		userID, in.Description, in.Amount, in.Category, in.Date,
	).Scan(&out.ID, &out.Date, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race. Resolve the surviving row outside the aborted tx.
			return Transaction{}, &DuplicateError{ID: r.lookupExisting(ctx, userID, in)}
		}
		return Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, err
	}
	return out, nil
}

// lookupExisting resolves the id of the row holding the natural key, with no
// time bound. Best effort: returns "" when it cannot be determined.
func (r *Repo) lookupExisting(ctx context.Context, userID string, in NewTransaction) string {
	var id string
	err := r.Pool.QueryRow(ctx,
		`SELECT id::text
		 FROM transactions
		 WHERE user_id = $1
		   AND description = $2
		   AND amount = $3
		   AND category = $4
		   AND date = $5::date`,
		userID, in.Description, in.Amount, in.Category, in.Date,
	).Scan(&id)
	if err != nil {
		return ""
	}
	return id
}

func (r *Repo) List(ctx context.Context, userID string, f ListFilter) ([]Transaction, error) {
	q := `SELECT id::text, user_id, description, amount, category, date::text, created_at
	      FROM transactions
	      WHERE user_id = $1`
	args := []interface{}{userID}

	if f.From != nil {
		args = append(args, *f.From)
		q += fmt.Sprintf(" AND date >= $%d::date", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		q += fmt.Sprintf(" AND date <= $%d::date", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d", len(args))

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0, limit)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Category, &t.Date, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userID, id string) (Transaction, error) {
	var t Transaction
	err := r.Pool.QueryRow(ctx,
		`SELECT id::text, user_id, description, amount, category, date::text, created_at
		 FROM transactions
		 WHERE id = $1::uuid AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Category, &t.Date, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Update replaces all mutable fields in one statement. The owner predicate is
// part of the WHERE clause, so a foreign row reads as absent.
func (r *Repo) Update(ctx context.Context, userID, id string, in NewTransaction) (Transaction, error) {
	out := Transaction{
		ID:          id,
		UserID:      userID,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
	}
	err := r.Pool.QueryRow(ctx,
		`UPDATE transactions
		 SET description = $1, amount = $2, category = $3, date = $4::date
		 WHERE id = $5::uuid AND user_id = $6
		 RETURNING date::text, created_at`,
		in.Description, in.Amount, in.Category, in.Date, id, userID,
	).Scan(&out.Date, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return Transaction{}, &DuplicateError{ID: r.lookupExisting(ctx, userID, in)}
		}
		return Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1::uuid AND user_id = $2`,
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
