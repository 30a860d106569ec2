// Package app assembles the HTTP application: services, event
// subscriptions, middleware and routes.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/versebank/banking/config"
	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/eventbus"
	accountsvc "github.com/versebank/banking/pkg/service/account"
	accountapi "github.com/versebank/banking/webapi/account"
	"github.com/versebank/banking/webapi/common"
)

// New builds the Fiber application with all routes and middleware wired to
// the given dependencies.
func New(deps config.Deps) *fiber.App {
	registerEventHandlers(deps.EventBus, deps.Logger)

	svc := accountsvc.NewService(deps)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	accountapi.Routes(app, svc)

	return app
}

// registerEventHandlers subscribes the audit logging consumers for every
// domain event type.
func registerEventHandlers(bus eventbus.Bus, logger *slog.Logger) {
	bus.Subscribe(account.AccountOpened{}.EventType(), func(ctx context.Context, ev eventbus.Event) {
		e, ok := ev.(account.AccountOpened)
		if !ok {
			return
		}
		logger.Info("account opened",
			"accountID", e.AccountID,
			"customerID", e.CustomerID,
			"accountType", e.AccountType,
			"initialBalance", e.InitialBalance,
		)
	})
	bus.Subscribe(account.MoneyDeposited{}.EventType(), func(ctx context.Context, ev eventbus.Event) {
		e, ok := ev.(account.MoneyDeposited)
		if !ok {
			return
		}
		logger.Info("money deposited",
			"accountID", e.AccountID,
			"amount", e.Amount,
			"newBalance", e.NewBalance,
		)
	})
	bus.Subscribe(account.MoneyWithdrawn{}.EventType(), func(ctx context.Context, ev eventbus.Event) {
		e, ok := ev.(account.MoneyWithdrawn)
		if !ok {
			return
		}
		logger.Info("money withdrawn",
			"accountID", e.AccountID,
			"amount", e.Amount,
			"newBalance", e.NewBalance,
		)
	})
	bus.Subscribe(account.MoneyReceived{}.EventType(), func(ctx context.Context, ev eventbus.Event) {
		e, ok := ev.(account.MoneyReceived)
		if !ok {
			return
		}
		logger.Info("money received",
			"accountID", e.AccountID,
			"amount", e.Amount,
			"newBalance", e.NewBalance,
		)
	})
	bus.Subscribe(account.LargeTransactionDetected{}.EventType(), func(ctx context.Context, ev eventbus.Event) {
		e, ok := ev.(account.LargeTransactionDetected)
		if !ok {
			return
		}
		logger.Warn("large transaction detected",
			"accountID", e.AccountID,
			"amount", e.Amount,
			"kind", e.Kind,
		)
	})
}
