package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centbook/centbook-backend/internal/admin"
	"github.com/centbook/centbook-backend/internal/auth"
	"github.com/centbook/centbook-backend/internal/budgets"
	"github.com/centbook/centbook-backend/internal/config"
	"github.com/centbook/centbook-backend/internal/reports"
	"github.com/centbook/centbook-backend/internal/router"
	"github.com/centbook/centbook-backend/internal/transactions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error parsing DATABASE_URL: %v", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: newErrorHandler(cfg.DevMode()),
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigins))
	app.Use(requestLogger())

	app.Get("/health", healthHandler)
	app.Get("/healthz", healthHandler)

	var verifier auth.Verifier
	if cfg.IntrospectionURL != "" {
		verifier = auth.NewIntrospectionVerifier(cfg.IntrospectionURL)
	} else {
		verifier = &auth.JWTVerifier{Secret: []byte(cfg.JWTSecret)}

		// Dev token endpoint, local HS256 mode only.
		if cfg.DevMode() {
			app.Get("/dev/token", auth.DevTokenHandler([]byte(cfg.JWTSecret)))
		}
	}

	txHandler := transactions.NewHandler(transactions.NewRepo(pool))
	budgetHandler := budgets.NewHandler(budgets.NewRepo(pool))
	reportHandler := reports.NewHandler(reports.NewRepo(pool))
	adminHandler := admin.NewHandler(pool)

	r := &router.Router{
		TransactionsHandler: txHandler,
		BudgetsHandler:      budgetHandler,
		ReportsHandler:      reportHandler,
		AdminHandler:        adminHandler,
		AuthMW:              auth.Middleware(verifier),
		WriteLimitMW:        router.RateLimitWrite(cfg.RateLimitMax, cfg.RateLimitWindow),
		AdminMW:             admin.RequireAPIKey(cfg.AdminAPIKey),
	}
	r.RegisterRoutes(app)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Println("Listening on port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// newErrorHandler maps *fiber.Error through as-is and collapses everything
// else to a 500; the underlying detail is only exposed in dev.
func newErrorHandler(dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			if dev {
				message = err.Error()
			}
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}

func healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
