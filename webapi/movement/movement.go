package movement

import (
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/dto"
	movementsvc "github.com/amirasaad/corebank/pkg/service/movement"
	"github.com/amirasaad/corebank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the movement endpoints.
//
// Routes:
//   - POST /movements                        : Register a movement.
//   - GET  /movements/customer/:customerId   : Report by date range (startDate, endDate as dd/MM/yyyy).
func Routes(app *fiber.App, svc *movementsvc.Service, logger *slog.Logger) {
	app.Post("/movements", RegisterMovement(svc, logger))
	app.Get("/movements/customer/:customerId", Report(svc, logger))
}

// RegisterMovement returns a handler applying a signed amount to an account.
func RegisterMovement(svc *movementsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateMovementRequest](c)
		if input == nil {
			return err
		}
		date, ok := parseMovementDate(input.Date)
		if !ok {
			return common.ResponseJSON(c, common.InvalidArgs, "date must be an ISO-8601 date-time")
		}
		mv, err := svc.Register(c.UserContext(), dto.MovementCreate{
			AccountID:       uuid.MustParse(input.AccountID),
			Type:            input.Type,
			Amount:          input.Amount,
			Description:     input.Description,
			ReferenceNumber: input.ReferenceNumber,
			Date:            date,
		})
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		return common.SuccessJSON(c, fiber.StatusCreated, toMovementDTO(mv))
	}
}

// Report returns a handler listing a customer's movements, newest first.
func Report(svc *movementsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, err := time.Parse(ReportDateLayout, c.Query("startDate"))
		if err != nil {
			return common.ResponseJSON(c, common.InvalidArgs, "startDate must be dd/MM/yyyy")
		}
		var end *time.Time
		if raw := c.Query("endDate"); raw != "" {
			t, err := time.Parse(ReportDateLayout, raw)
			if err != nil {
				return common.ResponseJSON(c, common.InvalidArgs, "endDate must be dd/MM/yyyy")
			}
			end = &t
		}
		list, err := svc.Report(c.UserContext(), c.Params("customerId"), &start, end)
		if err != nil {
			return common.ErrorJSON(c, logger, err)
		}
		out := make([]MovementDTO, 0, len(list))
		for _, m := range list {
			out = append(out, toMovementDTO(m))
		}
		return common.SuccessJSON(c, fiber.StatusOK, out)
	}
}
