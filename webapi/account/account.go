package account

import (
	"log/slog"

	"github.com/amirasaad/corebank/pkg/dto"
	"github.com/amirasaad/corebank/pkg/repository"
	accountsvc "github.com/amirasaad/corebank/pkg/service/account"
	"github.com/amirasaad/corebank/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the account endpoints.
//
// Routes:
//   - GET    /accounts?page&size         : List accounts, zero-based pages.
//   - GET    /accounts/:accountNumber    : Retrieve one account.
//   - POST   /accounts                   : Open an account for a customer.
//   - DELETE /accounts/:accountNumber    : Deactivate an account.
func Routes(app *fiber.App, svc *accountsvc.Service, logger *slog.Logger) {
	app.Get("/accounts", ListAccounts(svc, logger))
	app.Get("/accounts/:accountNumber", GetAccount(svc, logger))
	app.Post("/accounts", CreateAccount(svc, logger))
	app.Delete("/accounts/:accountNumber", DeleteAccount(svc, logger))
}

// ListAccounts returns a handler listing accounts page by page.
func ListAccounts(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := repository.Page{
			Page: c.QueryInt("page", 0),
			Size: c.QueryInt("size", accountsvc.DefaultPageSize),
		}
		result, err := svc.List(c.UserContext(), page)
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		out := PageDTO{Page: result.Page, Size: result.Size, Total: result.Total}
		out.Content = make([]AccountDTO, 0, len(result.Items))
		for _, a := range result.Items {
			out.Content = append(out.Content, toAccountDTO(a))
		}
		return common.SuccessJSON(c, fiber.StatusOK, out)
	}
}

// GetAccount returns a handler fetching an account by number.
func GetAccount(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.GetByNumber(c.UserContext(), c.Params("accountNumber"))
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, toAccountDTO(a))
	}
}

// CreateAccount returns a handler opening an account. The customer is
// fetched from the identity service when no replica exists yet.
func CreateAccount(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Create(c.UserContext(), dto.AccountCreate{
			AccountNumber:  input.AccountNumber,
			Type:           input.AccountType,
			InitialBalance: input.InitialBalance,
			CurrencyCode:   input.CurrencyCode,
			CustomerID:     input.CustomerID,
		})
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusCreated, toAccountDTO(a))
	}
}

// DeleteAccount returns a handler deactivating an account.
func DeleteAccount(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Deactivate(c.UserContext(), c.Params("accountNumber")); err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, nil)
	}
}
