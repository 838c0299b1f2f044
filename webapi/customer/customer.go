package customer

import (
	"log/slog"

	"github.com/amirasaad/corebank/pkg/dto"
	"github.com/amirasaad/corebank/pkg/service/identity"
	"github.com/amirasaad/corebank/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the customer endpoints of the identity service. GET
// /customers/:customerId is also the endpoint the movement service's lookup
// client calls.
func Routes(app *fiber.App, svc *identity.Service, logger *slog.Logger) {
	app.Get("/customers", ListCustomers(svc, logger))
	app.Get("/customers/:customerId", GetCustomer(svc, logger))
	app.Post("/customers", CreateCustomer(svc, logger))
	app.Put("/customers/:customerId", UpdateCustomer(svc, logger))
	app.Delete("/customers/:customerId", DeleteCustomer(svc, logger))
}

func ListCustomers(svc *identity.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		out := make([]dto.CustomerRead, 0, len(list))
		for _, cu := range list {
			out = append(out, toCustomerRead(cu))
		}
		return common.SuccessJSON(c, fiber.StatusOK, out)
	}
}

func GetCustomer(svc *identity.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cu, err := svc.Get(c.UserContext(), c.Params("customerId"))
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, toCustomerRead(cu))
	}
}

func CreateCustomer(svc *identity.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCustomerRequest](c)
		if input == nil {
			return err
		}
		cu, err := svc.Create(c.UserContext(), dto.CustomerCreate{
			CustomerID:     input.CustomerID,
			Identification: input.Identification,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Gender:         input.Gender,
			Age:            input.Age,
			Password:       input.Password,
			Status:         input.Status,
			Address:        input.Address,
			Email:          input.Email,
		})
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusCreated, toCustomerRead(cu))
	}
}

func UpdateCustomer(svc *identity.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateCustomerRequest](c)
		if input == nil {
			return err
		}
		cu, err := svc.Update(c.UserContext(), c.Params("customerId"), dto.CustomerUpdate{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Address:   input.Address,
			Email:     input.Email,
			Status:    input.Status,
		})
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, toCustomerRead(cu))
	}
}

func DeleteCustomer(svc *identity.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Remove(c.UserContext(), c.Params("customerId")); err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, nil)
	}
}
