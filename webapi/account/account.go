// Package account exposes the account use cases over HTTP.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
	accountsvc "github.com/versebank/banking/pkg/service/account"
	"github.com/versebank/banking/webapi/common"
)

// Routes registers the account endpoints.
//
//   - POST   /accounts                           : Open a new account.
//   - DELETE /accounts/:id                       : Close an account.
//   - GET    /accounts/:id                       : Retrieve an account.
//   - POST   /accounts/:id/deposit               : Deposit funds.
//   - POST   /accounts/:id/withdraw              : Withdraw funds.
//   - POST   /accounts/:id/transfer              : Transfer funds to another account.
//   - GET    /accounts/:id/balance               : Retrieve the balance.
//   - GET    /accounts/:id/transactions          : List the transaction log.
//   - GET    /accounts/:id/sufficient-balance    : Check balance sufficiency.
//   - GET    /accounts/:id/interest              : Projected annual interest.
//   - GET    /customers/:customerId/accounts     : List a customer's accounts.
func Routes(app *fiber.App, svc *accountsvc.Service) {
	app.Post("/accounts", OpenAccount(svc))
	app.Delete("/accounts/:id", CloseAccount(svc))
	app.Get("/accounts/:id", GetAccount(svc))
	app.Post("/accounts/:id/deposit", Deposit(svc))
	app.Post("/accounts/:id/withdraw", Withdraw(svc))
	app.Post("/accounts/:id/transfer", Transfer(svc))
	app.Get("/accounts/:id/balance", GetBalance(svc))
	app.Get("/accounts/:id/transactions", GetTransactions(svc))
	app.Get("/accounts/:id/sufficient-balance", SufficientBalance(svc))
	app.Get("/accounts/:id/interest", ProjectedInterest(svc))
	app.Get("/customers/:customerId/accounts", ListByCustomer(svc))
}

// OpenAccount returns the handler for opening a new account.
func OpenAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return nil // error response already written
		}
		accountType, err := account.ParseAccountType(input.AccountType)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account type", err.Error())
		}
		initial := decimal.Zero
		if input.InitialBalance != "" {
			initial, err = decimal.NewFromString(input.InitialBalance)
			if err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid initial balance", err.Error())
			}
		}
		a, err := svc.OpenAccount(c.UserContext(), input.CustomerID, accountType, initial)
		if err != nil {
			log.Errorf("Failed to open account: %v", err)
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to open account", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", ToAccountDTO(a))
	}
}

// CloseAccount returns the handler for closing an account.
func CloseAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		if err := svc.CloseAccount(c.UserContext(), id); err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to close account", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account closed", nil)
	}
}

// GetAccount returns the handler for retrieving a single account.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		a, err := svc.GetAccount(c.UserContext(), id)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to get account", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account retrieved", ToAccountDTO(a))
	}
}

// Deposit returns the handler for depositing funds.
func Deposit(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return nil // error response already written
		}
		amount, err := parseAmount(c, input.Amount)
		if err != nil {
			return nil // error response already written
		}
		tx, err := svc.Deposit(c.UserContext(), id, amount, input.Description)
		if err != nil {
			log.Errorf("Deposit failed for account %s: %v", id, err)
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Deposit failed", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", ToTransactionDTO(tx))
	}
}

// Withdraw returns the handler for withdrawing funds.
func Withdraw(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return nil // error response already written
		}
		amount, err := parseAmount(c, input.Amount)
		if err != nil {
			return nil // error response already written
		}
		tx, err := svc.Withdraw(c.UserContext(), id, amount, input.Description)
		if err != nil {
			log.Errorf("Withdrawal failed for account %s: %v", id, err)
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Withdrawal failed", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", ToTransactionDTO(tx))
	}
}

// Transfer returns the handler for transferring funds to another account.
func Transfer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sourceID, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return nil // error response already written
		}
		targetID, err := uuid.Parse(input.TargetAccountID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid target account ID", err.Error())
		}
		amount, err := parseAmount(c, input.Amount)
		if err != nil {
			return nil // error response already written
		}
		if err := svc.Transfer(c.UserContext(), sourceID, targetID, amount, input.Description); err != nil {
			log.Errorf("Transfer failed from %s to %s: %v", sourceID, targetID, err)
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Transfer failed", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", nil)
	}
}

// GetBalance returns the handler for the balance query.
func GetBalance(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		balance, err := svc.GetBalance(c.UserContext(), id)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to get balance", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance retrieved", BalanceDTO{
			AccountID: id.String(),
			Balance:   balance.String(),
		})
	}
}

// GetTransactions returns the handler for listing the transaction log.
func GetTransactions(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		txs, err := svc.GetTransactions(c.UserContext(), id)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to get transactions", err.Error())
		}
		dtos := make([]TransactionDTO, 0, len(txs))
		for _, tx := range txs {
			dtos = append(dtos, ToTransactionDTO(tx))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions retrieved", dtos)
	}
}

// SufficientBalance returns the handler for the sufficiency check. The
// amount comes from the "amount" query parameter.
func SufficientBalance(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		amount, err := money.Parse(c.Query("amount"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		ok, err := svc.HasSufficientBalance(c.UserContext(), id, amount)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to check balance", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance checked", SufficientBalanceDTO{
			AccountID:  id.String(),
			Amount:     amount.String(),
			Sufficient: ok,
		})
	}
}

// ProjectedInterest returns the handler for the interest projection.
func ProjectedInterest(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return nil // error response already written
		}
		interest, err := svc.ProjectedInterest(c.UserContext(), id)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to project interest", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Interest projected", BalanceDTO{
			AccountID: id.String(),
			Balance:   interest.String(),
		})
	}
}

// ListByCustomer returns the handler for listing a customer's accounts.
func ListByCustomer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID := c.Params("customerId")
		summaries, err := svc.ListByCustomer(c.UserContext(), customerID)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to list accounts", err.Error())
		}
		dtos := make([]AccountSummaryDTO, 0, len(summaries))
		for _, s := range summaries {
			dtos = append(dtos, ToAccountSummaryDTO(s))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts retrieved", dtos)
	}
}

// parseAccountID reads the :id path parameter, writing the error response on
// a malformed id.
func parseAccountID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		return uuid.Nil, err
	}
	return id, nil
}

// parseAmount parses a decimal amount string, writing the error response on
// a malformed value.
func parseAmount(c *fiber.Ctx, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		_ = common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		return decimal.Zero, err
	}
	return amount, nil
}
