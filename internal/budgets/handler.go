package budgets

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/centbook/centbook-backend/internal/auth"
)

// Store is the storage surface the handlers need. *Repo implements it.
type Store interface {
	List(ctx context.Context, userID string) ([]BudgetCategory, error)
	Create(ctx context.Context, userID string, in NewBudget) (BudgetCategory, error)
	Update(ctx context.Context, userID, id string, in NewBudget) (BudgetCategory, error)
	Delete(ctx context.Context, userID, id string) error
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Store.List(c.UserContext(), userID)
	if err != nil {
		return fmt.Errorf("list budget categories: %w", err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body BudgetRequest
	if err := c.BodyParser(&body); err != nil {
		return validationErr(c, []string{"name", "amount"})
	}
	if missing := body.validate(); len(missing) > 0 {
		return validationErr(c, missing)
	}

	created, err := h.Store.Create(c.UserContext(), userID, body.toNew())
	if err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			return duplicateErr(c, dup.ID)
		}
		return fmt.Errorf("create budget category: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found")
	}

	var body BudgetRequest
	if err := c.BodyParser(&body); err != nil {
		return validationErr(c, []string{"name", "amount"})
	}
	if missing := body.validate(); len(missing) > 0 {
		return validationErr(c, missing)
	}

	updated, err := h.Store.Update(c.UserContext(), userID, id, body.toNew())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonErr(c, fiber.StatusNotFound, "not_found")
		}
		var dup *DuplicateError
		if errors.As(err, &dup) {
			return duplicateErr(c, dup.ID)
		}
		return fmt.Errorf("update budget category: %w", err)
	}
	return c.JSON(updated)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found")
	}

	if err := h.Store.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonErr(c, fiber.StatusNotFound, "not_found")
		}
		return fmt.Errorf("delete budget category: %w", err)
	}
	return c.JSON(fiber.Map{"id": id})
}

func jsonErr(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func validationErr(c *fiber.Ctx, missing []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "validation_error",
		"missing": missing,
	})
}

func duplicateErr(c *fiber.Ctx, duplicateID string) error {
	resp := fiber.Map{"error": "duplicate_category"}
	if duplicateID != "" {
		resp["duplicateId"] = duplicateID
	}
	return c.Status(fiber.StatusConflict).JSON(resp)
}
