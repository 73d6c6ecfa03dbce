package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// Summary totals signed amounts over the period and attaches the top
// categories by spend.
func (r *Repo) Summary(ctx context.Context, userID, from, to string) (Summary, error) {
	out := Summary{From: from, To: to}

	err := r.Pool.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount END), 0)::bigint,
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount END), 0)::bigint
		 FROM transactions
		 WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date`,
		userID, from, to,
	).Scan(&out.Income, &out.Expense)
	if err != nil {
		return Summary{}, fmt.Errorf("summary totals: %w", err)
	}
	out.Net = out.Income - out.Expense

	rows, err := r.Pool.Query(ctx,
		`SELECT category, SUM(amount)::bigint, COUNT(*)::bigint
		 FROM transactions
		 WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		 GROUP BY category
		 ORDER BY SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END) DESC, category
		 LIMIT 12`,
		userID, from, to,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("summary categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return Summary{}, err
		}
		out.Categories = append(out.Categories, ct)
	}
	return out, rows.Err()
}

// Daily produces one point per calendar day in the period, zero-filled for
// days with no rows, with a running net balance.
func (r *Repo) Daily(ctx context.Context, userID, from, to string) ([]DayPoint, error) {
	rows, err := r.Pool.Query(ctx,
		`WITH days AS (
			SELECT d::date AS day
			FROM generate_series($2::date, $3::date, interval '1 day') AS d
		 ),
		 tx AS (
			SELECT date AS day,
			       SUM(CASE WHEN amount > 0 THEN amount END)::bigint AS income,
			       SUM(CASE WHEN amount < 0 THEN -amount END)::bigint AS expense
			FROM transactions
			WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
			GROUP BY 1
		 )
		 SELECT days.day::text,
		        COALESCE(tx.income, 0)::bigint,
		        COALESCE(tx.expense, 0)::bigint
		 FROM days
		 LEFT JOIN tx ON tx.day = days.day
		 ORDER BY days.day ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("daily series: %w", err)
	}
	defer rows.Close()

	var out []DayPoint
	var running int64
	for rows.Next() {
		var p DayPoint
		if err := rows.Scan(&p.Date, &p.Income, &p.Expense); err != nil {
			return nil, err
		}
		running += p.Income - p.Expense
		p.Balance = running
		out = append(out, p)
	}
	return out, rows.Err()
}

// SpendByCategory returns positive spend per category, largest first. Rows
// with no spend are excluded, so the result feeds straight into the pie.
func (r *Repo) SpendByCategory(ctx context.Context, userID, from, to string) ([]CategoryTotal, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT category, SUM(-amount)::bigint, COUNT(*)::bigint
		 FROM transactions
		 WHERE user_id = $1 AND amount < 0 AND date BETWEEN $2::date AND $3::date
		 GROUP BY category
		 ORDER BY SUM(-amount) DESC, category`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("spend by category: %w", err)
	}
	defer rows.Close()

	var out []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// BudgetVsActual joins budget ceilings against the month's spend. Categories
// with no transactions still appear with zero spent.
func (r *Repo) BudgetVsActual(ctx context.Context, userID, monthStart string) ([]BudgetReportRow, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT b.name, b.amount,
			COALESCE(SUM(CASE WHEN t.amount < 0 THEN -t.amount END), 0)::bigint AS spent
		 FROM budget_categories b
		 LEFT JOIN transactions t
			ON t.user_id = b.user_id
		   AND t.category = b.name
		   AND t.date >= $2::date
		   AND t.date < ($2::date + INTERVAL '1 month')
		 WHERE b.user_id = $1
		 GROUP BY b.id, b.name, b.amount
		 ORDER BY b.name`,
		userID, monthStart,
	)
	if err != nil {
		return nil, fmt.Errorf("budget vs actual: %w", err)
	}
	defer rows.Close()

	var out []BudgetReportRow
	for rows.Next() {
		var row BudgetReportRow
		if err := rows.Scan(&row.Category, &row.Budget, &row.Spent); err != nil {
			return nil, err
		}
		row.Remaining = row.Budget - row.Spent
		out = append(out, row)
	}
	return out, rows.Err()
}

// Statement loads the printable rows plus period totals. Totals come from
// their own aggregate so a truncated row list cannot skew them.
func (r *Repo) Statement(ctx context.Context, userID, from, to string) (StatementData, error) {
	var data StatementData

	err := r.Pool.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount END), 0)::bigint,
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount END), 0)::bigint
		 FROM transactions
		 WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date`,
		userID, from, to,
	).Scan(&data.TotalIncome, &data.TotalExpense)
	if err != nil {
		return StatementData{}, fmt.Errorf("statement totals: %w", err)
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT id::text, description, amount, category, date::text
		 FROM transactions
		 WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		 ORDER BY date DESC, created_at DESC
		 LIMIT 2000`,
		userID, from, to,
	)
	if err != nil {
		return StatementData{}, fmt.Errorf("statement rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row StatementRow
		if err := rows.Scan(&row.ID, &row.Description, &row.Amount, &row.Category, &row.Date); err != nil {
			return StatementData{}, err
		}
		data.Rows = append(data.Rows, row)
	}
	return data, rows.Err()
}
