package budgets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	listFn   func(ctx context.Context, userID string) ([]BudgetCategory, error)
	createFn func(ctx context.Context, userID string, in NewBudget) (BudgetCategory, error)
	updateFn func(ctx context.Context, userID, id string, in NewBudget) (BudgetCategory, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (s *fakeStore) List(ctx context.Context, userID string) ([]BudgetCategory, error) {
	return s.listFn(ctx, userID)
}

func (s *fakeStore) Create(ctx context.Context, userID string, in NewBudget) (BudgetCategory, error) {
	return s.createFn(ctx, userID, in)
}

func (s *fakeStore) Update(ctx context.Context, userID, id string, in NewBudget) (BudgetCategory, error) {
	return s.updateFn(ctx, userID, id, in)
}

func (s *fakeStore) Delete(ctx context.Context, userID, id string) error {
	return s.deleteFn(ctx, userID, id)
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
	app.Get("/api/budgets", h.List)
	app.Post("/api/budgets", h.Create)
	app.Put("/api/budgets/:id", h.Update)
	app.Delete("/api/budgets/:id", h.Delete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-User", testUser)

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(raw)
}

func TestCreateBudget(t *testing.T) {
	store := &fakeStore{
		createFn: func(_ context.Context, userID string, in NewBudget) (BudgetCategory, error) {
			assert.Equal(t, testUser, userID)
			assert.Equal(t, NewBudget{Name: "Food", Amount: 50000}, in)
			return BudgetCategory{ID: "b-1", UserID: userID, Name: in.Name, Amount: in.Amount}, nil
		},
	}
	app := newTestApp(store)

	status, body := doJSON(t, app, http.MethodPost, "/api/budgets",
		`{"name":"Food","amount":50000}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Contains(t, body, `"name":"Food"`)
	assert.Contains(t, body, `"amount":50000`)
}

func TestCreateBudgetValidation(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	cases := map[string]struct {
		body string
		want string
	}{
		"empty body":      {`{}`, `{"error":"validation_error","missing":["name","amount"]}`},
		"blank name":      {`{"name":"  ","amount":100}`, `{"error":"validation_error","missing":["name"]}`},
		"missing amount":  {`{"name":"Food"}`, `{"error":"validation_error","missing":["amount"]}`},
		"negative amount": {`{"name":"Food","amount":-1}`, `{"error":"validation_error","missing":["amount"]}`},
		"malformed":       {`{"name":`, `{"error":"validation_error","missing":["name","amount"]}`},
	}

	for name, tc := range cases {
		status, body := doJSON(t, app, http.MethodPost, "/api/budgets", tc.body)
		assert.Equal(t, fiber.StatusBadRequest, status, name)
		assert.JSONEq(t, tc.want, body, name)
	}
}

func TestCreateBudgetDuplicateName(t *testing.T) {
	store := &fakeStore{
		createFn: func(context.Context, string, NewBudget) (BudgetCategory, error) {
			return BudgetCategory{}, &DuplicateError{ID: "existing-id"}
		},
	}
	app := newTestApp(store)

	status, body := doJSON(t, app, http.MethodPost, "/api/budgets",
		`{"name":"Food","amount":50000}`)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.JSONEq(t, `{"error":"duplicate_category","duplicateId":"existing-id"}`, body)
}

func TestListBudgets(t *testing.T) {
	store := &fakeStore{
		listFn: func(_ context.Context, userID string) ([]BudgetCategory, error) {
			assert.Equal(t, testUser, userID)
			return []BudgetCategory{
				{ID: "b-1", UserID: userID, Name: "Food", Amount: 50000},
				{ID: "b-2", UserID: userID, Name: "Transport", Amount: 20000},
			}, nil
		},
	}
	app := newTestApp(store)

	status, body := doJSON(t, app, http.MethodGet, "/api/budgets", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"name":"Food"`)
	assert.Contains(t, body, `"name":"Transport"`)
}

func TestUpdateBudgetOutcomes(t *testing.T) {
	const id = "7d4c2f80-91a3-4c5e-b7c9-2f6a8e1d3b45"
	reqBody := `{"name":"Dining","amount":60000}`

	t.Run("replaced", func(t *testing.T) {
		store := &fakeStore{
			updateFn: func(_ context.Context, _, gotID string, in NewBudget) (BudgetCategory, error) {
				assert.Equal(t, id, gotID)
				return BudgetCategory{ID: gotID, Name: in.Name, Amount: in.Amount}, nil
			},
		}
		status, body := doJSON(t, newTestApp(store), http.MethodPut, "/api/budgets/"+id, reqBody)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, `"name":"Dining"`)
	})

	t.Run("not found", func(t *testing.T) {
		store := &fakeStore{
			updateFn: func(context.Context, string, string, NewBudget) (BudgetCategory, error) {
				return BudgetCategory{}, ErrNotFound
			},
		}
		status, body := doJSON(t, newTestApp(store), http.MethodPut, "/api/budgets/"+id, reqBody)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.JSONEq(t, `{"error":"not_found"}`, body)
	})

	t.Run("name collision", func(t *testing.T) {
		store := &fakeStore{
			updateFn: func(context.Context, string, string, NewBudget) (BudgetCategory, error) {
				return BudgetCategory{}, &DuplicateError{ID: "other-id"}
			},
		}
		status, body := doJSON(t, newTestApp(store), http.MethodPut, "/api/budgets/"+id, reqBody)
		assert.Equal(t, fiber.StatusConflict, status)
		assert.JSONEq(t, `{"error":"duplicate_category","duplicateId":"other-id"}`, body)
	})

	t.Run("malformed id short-circuits", func(t *testing.T) {
		store := &fakeStore{
			updateFn: func(context.Context, string, string, NewBudget) (BudgetCategory, error) {
				t.Fatal("store must not be reached for a malformed id")
				return BudgetCategory{}, nil
			},
		}
		status, body := doJSON(t, newTestApp(store), http.MethodPut, "/api/budgets/not-a-uuid", reqBody)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.JSONEq(t, `{"error":"not_found"}`, body)
	})
}

func TestDeleteBudget(t *testing.T) {
	const id = "7d4c2f80-91a3-4c5e-b7c9-2f6a8e1d3b45"

	t.Run("removed", func(t *testing.T) {
		store := &fakeStore{
			deleteFn: func(_ context.Context, userID, gotID string) error {
				assert.Equal(t, testUser, userID)
				assert.Equal(t, id, gotID)
				return nil
			},
		}
		status, body := doJSON(t, newTestApp(store), http.MethodDelete, "/api/budgets/"+id, "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"id":"`+id+`"}`, body)
	})

	t.Run("not found", func(t *testing.T) {
		store := &fakeStore{
			deleteFn: func(context.Context, string, string) error { return ErrNotFound },
		}
		status, body := doJSON(t, newTestApp(store), http.MethodDelete, "/api/budgets/"+id, "")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.JSONEq(t, `{"error":"not_found"}`, body)
	})
}

func TestBudgetsRequireIdentity(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.JSONEq(t, `{"error":"unauthorized"}`, string(body))
}
