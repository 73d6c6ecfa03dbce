package admin

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{Pool: pool}
}

type latestTx struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Category  string `json:"category"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
}

type OverviewResponse struct {
	UsersTotal         int64      `json:"users_total"`
	TransactionsTotal  int64      `json:"transactions_total"`
	BudgetsTotal       int64      `json:"budgets_total"`
	LatestTransactions []latestTx `json:"latest_transactions"`
}

// Overview reports store-wide counts plus the most recent writes. Operator
// tooling only; the caller passed the admin key middleware.
func (h *Handler) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var resp OverviewResponse

	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(DISTINCT user_id) FROM transactions`).Scan(&resp.UsersTotal); err != nil {
		return fmt.Errorf("overview users_total: %w", err)
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&resp.TransactionsTotal); err != nil {
		return fmt.Errorf("overview transactions_total: %w", err)
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM budget_categories`).Scan(&resp.BudgetsTotal); err != nil {
		return fmt.Errorf("overview budgets_total: %w", err)
	}

	rows, err := h.Pool.Query(ctx, `
		SELECT id::text, user_id::text, amount, category, date::text, created_at::text
		FROM transactions
		ORDER BY created_at DESC
		LIMIT 20`)
	if err != nil {
		return fmt.Errorf("overview latest: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t latestTx
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Date, &t.CreatedAt); err != nil {
			return fmt.Errorf("overview latest scan: %w", err)
		}
		resp.LatestTransactions = append(resp.LatestTransactions, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("overview latest rows: %w", err)
	}

	return c.JSON(resp)
}
