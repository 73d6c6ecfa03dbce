package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/centbook/centbook-backend/internal/auth"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Store is the aggregate surface the handlers need. *Repo implements it.
type Store interface {
	Summary(ctx context.Context, userID, from, to string) (Summary, error)
	Daily(ctx context.Context, userID, from, to string) ([]DayPoint, error)
	SpendByCategory(ctx context.Context, userID, from, to string) ([]CategoryTotal, error)
	BudgetVsActual(ctx context.Context, userID, monthStart string) ([]BudgetReportRow, error)
	Statement(ctx context.Context, userID, from, to string) (StatementData, error)
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// periodFromQuery reads the inclusive from/to bounds, defaulting to the
// trailing 30 days when either is absent.
func periodFromQuery(c *fiber.Ctx) (from, to string, bad []string) {
	from = strings.TrimSpace(c.Query("from"))
	to = strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		end := time.Now()
		start := end.AddDate(0, 0, -29)
		from = start.Format(dateLayout)
		to = end.Format(dateLayout)
	}

	if _, err := time.Parse(dateLayout, from); err != nil {
		bad = append(bad, "from")
	}
	if _, err := time.Parse(dateLayout, to); err != nil {
		bad = append(bad, "to")
	}
	return from, to, bad
}

func (h *Handler) GetSummary(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, bad := periodFromQuery(c)
	if len(bad) > 0 {
		return validationErr(c, bad)
	}

	s, err := h.Store.Summary(c.UserContext(), userID, from, to)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	return c.JSON(s)
}

func (h *Handler) DailySeries(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, bad := periodFromQuery(c)
	if len(bad) > 0 {
		return validationErr(c, bad)
	}

	points, err := h.Store.Daily(c.UserContext(), userID, from, to)
	if err != nil {
		return fmt.Errorf("daily series: %w", err)
	}
	return c.JSON(fiber.Map{"from": from, "to": to, "items": points})
}

func (h *Handler) BudgetsReport(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = time.Now().Format(monthLayout)
	}
	if _, err := time.Parse(monthLayout, month); err != nil {
		return validationErr(c, []string{"month"})
	}

	rows, err := h.Store.BudgetVsActual(c.UserContext(), userID, month+"-01")
	if err != nil {
		return fmt.Errorf("budgets report: %w", err)
	}
	return c.JSON(fiber.Map{"month": month, "items": rows})
}

func (h *Handler) CategoryChart(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, bad := periodFromQuery(c)
	if len(bad) > 0 {
		return validationErr(c, bad)
	}

	totals, err := h.Store.SpendByCategory(c.UserContext(), userID, from, to)
	if err != nil {
		return fmt.Errorf("category chart data: %w", err)
	}

	png, err := renderCategoryPie(totals)
	if errors.Is(err, ErrNoData) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	if err != nil {
		return err
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

func (h *Handler) StatementPDF(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, bad := periodFromQuery(c)
	if len(bad) > 0 {
		return validationErr(c, bad)
	}

	data, err := h.Store.Statement(c.UserContext(), userID, from, to)
	if err != nil {
		return fmt.Errorf("statement data: %w", err)
	}

	pdfBytes, err := renderStatementPDF(userID, from, to, data)
	if err != nil {
		return fmt.Errorf("statement pdf: %w", err)
	}

	filename := "statement-" + from + "-to-" + to + ".pdf"
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func validationErr(c *fiber.Ctx, missing []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "validation_error",
		"missing": missing,
	})
}
