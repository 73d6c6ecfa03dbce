package reports

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	summaryFn   func(ctx context.Context, userID, from, to string) (Summary, error)
	dailyFn     func(ctx context.Context, userID, from, to string) ([]DayPoint, error)
	spendFn     func(ctx context.Context, userID, from, to string) ([]CategoryTotal, error)
	budgetFn    func(ctx context.Context, userID, monthStart string) ([]BudgetReportRow, error)
	statementFn func(ctx context.Context, userID, from, to string) (StatementData, error)
}

func (s *fakeStore) Summary(ctx context.Context, userID, from, to string) (Summary, error) {
	return s.summaryFn(ctx, userID, from, to)
}

func (s *fakeStore) Daily(ctx context.Context, userID, from, to string) ([]DayPoint, error) {
	return s.dailyFn(ctx, userID, from, to)
}

func (s *fakeStore) SpendByCategory(ctx context.Context, userID, from, to string) ([]CategoryTotal, error) {
	return s.spendFn(ctx, userID, from, to)
}

func (s *fakeStore) BudgetVsActual(ctx context.Context, userID, monthStart string) ([]BudgetReportRow, error) {
	return s.budgetFn(ctx, userID, monthStart)
}

func (s *fakeStore) Statement(ctx context.Context, userID, from, to string) (StatementData, error) {
	return s.statementFn(ctx, userID, from, to)
}

const testUser = "user-1"

func newTestApp(store Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		if uid := c.Get("X-Test-User"); uid != "" {
			c.Locals("user_id", uid)
		}
		return c.Next()
	})

	h := NewHandler(store)
	app.Get("/api/summary", h.GetSummary)
	app.Get("/api/reports/daily", h.DailySeries)
	app.Get("/api/reports/budgets", h.BudgetsReport)
	app.Get("/api/reports/chart", h.CategoryChart)
	app.Get("/api/reports/statement", h.StatementPDF)
	return app
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("X-Test-User", testUser)
	res, err := app.Test(req, 5000)
	require.NoError(t, err)
	return res
}

func TestGetSummary(t *testing.T) {
	store := &fakeStore{
		summaryFn: func(_ context.Context, userID, from, to string) (Summary, error) {
			assert.Equal(t, testUser, userID)
			assert.Equal(t, "2024-01-01", from)
			assert.Equal(t, "2024-01-31", to)
			return Summary{
				From: from, To: to,
				Income: 250000, Expense: 98000, Net: 152000,
				Categories: []CategoryTotal{{Category: "Food", Total: -45000, Count: 12}},
			}, nil
		},
	}
	app := newTestApp(store)

	res := get(t, app, "/api/summary?from=2024-01-01&to=2024-01-31")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `"income":250000`)
	assert.Contains(t, string(body), `"net":152000`)
	assert.Contains(t, string(body), `"category":"Food"`)
}

func TestGetSummaryDefaultsToTrailingMonth(t *testing.T) {
	var gotFrom, gotTo string
	store := &fakeStore{
		summaryFn: func(_ context.Context, _, from, to string) (Summary, error) {
			gotFrom, gotTo = from, to
			return Summary{From: from, To: to}, nil
		},
	}
	app := newTestApp(store)

	res := get(t, app, "/api/summary")
	res.Body.Close()
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	from, err := time.Parse(dateLayout, gotFrom)
	require.NoError(t, err)
	to, err := time.Parse(dateLayout, gotTo)
	require.NoError(t, err)
	assert.Equal(t, 29*24*time.Hour, to.Sub(from))
}

func TestGetSummaryRejectsBadBounds(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	res := get(t, app, "/api/summary?from=nope&to=2024-01-31")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"error":"validation_error","missing":["from"]}`, string(body))
}

func TestDailySeries(t *testing.T) {
	store := &fakeStore{
		dailyFn: func(_ context.Context, _, from, to string) ([]DayPoint, error) {
			return []DayPoint{
				{Date: "2024-01-01", Income: 100, Expense: 0, Balance: 100},
				{Date: "2024-01-02", Income: 0, Expense: 40, Balance: 60},
			}, nil
		},
	}
	app := newTestApp(store)

	res := get(t, app, "/api/reports/daily?from=2024-01-01&to=2024-01-02")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `"balance":60`)
}

func TestBudgetsReport(t *testing.T) {
	store := &fakeStore{
		budgetFn: func(_ context.Context, userID, monthStart string) ([]BudgetReportRow, error) {
			assert.Equal(t, testUser, userID)
			assert.Equal(t, "2024-02-01", monthStart)
			return []BudgetReportRow{
				{Category: "Food", Budget: 50000, Spent: 61000, Remaining: -11000},
			}, nil
		},
	}
	app := newTestApp(store)

	res := get(t, app, "/api/reports/budgets?month=2024-02")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `"month":"2024-02"`)
	assert.Contains(t, string(body), `"remaining":-11000`)
}

func TestBudgetsReportRejectsBadMonth(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	res := get(t, app, "/api/reports/budgets?month=Feb-2024")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"error":"validation_error","missing":["month"]}`, string(body))
}

func TestCategoryChartServesPNG(t *testing.T) {
	store := &fakeStore{
		spendFn: func(context.Context, string, string, string) ([]CategoryTotal, error) {
			return []CategoryTotal{
				{Category: "Food", Total: 45000, Count: 12},
				{Category: "Transport", Total: 12000, Count: 5},
			}, nil
		},
	}
	app := newTestApp(store)

	res := get(t, app, "/api/reports/chart?from=2024-01-01&to=2024-01-31")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
	require.Greater(t, len(body), 4)
	assert.Equal(t, pngMagic, body[:4])
}

func TestCategoryChartEmptyIs404(t *testing.T) {
	store := &fakeStore{
		spendFn: func(context.Context, string, string, string) ([]CategoryTotal, error) {
			return nil, nil
		},
	}
	app := newTestApp(store)

	res := get(t, app, "/api/reports/chart?from=2024-01-01&to=2024-01-31")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"not_found"}`, string(body))
}

func TestStatementServesPDF(t *testing.T) {
	store := &fakeStore{
		statementFn: func(_ context.Context, _, from, to string) (StatementData, error) {
			return StatementData{
				TotalIncome:  250000,
				TotalExpense: 98000,
				Rows: []StatementRow{
					{ID: "3f1e8a52-0a70-4052-9d44-8f0a3a1b6c01", Description: "Salary", Amount: 250000, Category: "Income", Date: "2024-01-31"},
				},
			}, nil
		},
	}
	app := newTestApp(store)

	res := get(t, app, "/api/reports/statement?from=2024-01-01&to=2024-01-31")
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "statement-2024-01-01-to-2024-01-31.pdf")
	require.Greater(t, len(body), 5)
	assert.Equal(t, "%PDF-", string(body[:5]))
}

func TestReportsRequireIdentity(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	for _, target := range []string{
		"/api/summary", "/api/reports/daily", "/api/reports/budgets",
		"/api/reports/chart", "/api/reports/statement",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		res, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode, target)
		assert.JSONEq(t, `{"error":"unauthorized"}`, string(body), target)
	}
}
