package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/centbook/centbook-backend/internal/admin"
	"github.com/centbook/centbook-backend/internal/budgets"
	"github.com/centbook/centbook-backend/internal/reports"
	"github.com/centbook/centbook-backend/internal/transactions"
)

type Router struct {
	TransactionsHandler *transactions.Handler
	BudgetsHandler      *budgets.Handler
	ReportsHandler      *reports.Handler
	AdminHandler        *admin.Handler
	AuthMW              fiber.Handler
	WriteLimitMW        fiber.Handler
	AdminMW             fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.TransactionsHandler != nil {
		if r.AuthMW != nil {
			if r.WriteLimitMW != nil {
				app.Post("/api/transactions", r.AuthMW, r.WriteLimitMW, r.TransactionsHandler.Create)
			} else {
				app.Post("/api/transactions", r.AuthMW, r.TransactionsHandler.Create)
			}
			app.Get("/api/transactions", r.AuthMW, r.TransactionsHandler.List)
			app.Get("/api/transactions/:id", r.AuthMW, r.TransactionsHandler.Get)
			app.Put("/api/transactions/:id", r.AuthMW, r.TransactionsHandler.Update)
			app.Delete("/api/transactions/:id", r.AuthMW, r.TransactionsHandler.Delete)
		} else {
			app.Post("/api/transactions", r.TransactionsHandler.Create)
			app.Get("/api/transactions", r.TransactionsHandler.List)
			app.Get("/api/transactions/:id", r.TransactionsHandler.Get)
			app.Put("/api/transactions/:id", r.TransactionsHandler.Update)
			app.Delete("/api/transactions/:id", r.TransactionsHandler.Delete)
		}
	}

	if r.BudgetsHandler != nil {
		if r.AuthMW != nil {
			app.Get("/api/budgets", r.AuthMW, r.BudgetsHandler.List)
			app.Post("/api/budgets", r.AuthMW, r.BudgetsHandler.Create)
			app.Put("/api/budgets/:id", r.AuthMW, r.BudgetsHandler.Update)
			app.Delete("/api/budgets/:id", r.AuthMW, r.BudgetsHandler.Delete)
		} else {
			app.Get("/api/budgets", r.BudgetsHandler.List)
			app.Post("/api/budgets", r.BudgetsHandler.Create)
			app.Put("/api/budgets/:id", r.BudgetsHandler.Update)
			app.Delete("/api/budgets/:id", r.BudgetsHandler.Delete)
		}
	}

	if r.ReportsHandler != nil {
		if r.AuthMW != nil {
			app.Get("/api/summary", r.AuthMW, r.ReportsHandler.GetSummary)
			app.Get("/api/reports/daily", r.AuthMW, r.ReportsHandler.DailySeries)
			app.Get("/api/reports/budgets", r.AuthMW, r.ReportsHandler.BudgetsReport)
			app.Get("/api/reports/chart", r.AuthMW, r.ReportsHandler.CategoryChart)
			app.Get("/api/reports/statement", r.AuthMW, r.ReportsHandler.StatementPDF)
		} else {
			app.Get("/api/summary", r.ReportsHandler.GetSummary)
			app.Get("/api/reports/daily", r.ReportsHandler.DailySeries)
			app.Get("/api/reports/budgets", r.ReportsHandler.BudgetsReport)
			app.Get("/api/reports/chart", r.ReportsHandler.CategoryChart)
			app.Get("/api/reports/statement", r.ReportsHandler.StatementPDF)
		}
	}

	if r.AdminHandler != nil && r.AdminMW != nil {
		app.Get("/api/admin/overview", r.AdminMW, r.AdminHandler.Overview)
	}
}
